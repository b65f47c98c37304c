package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$1,234,567.50", formatMoney(1234567.5))
	assert.Equal(t, "$0.00", formatMoney(0))
}

func TestTableRender(t *testing.T) {
	table := NewConsole().CreateTable()
	table.AddColumn("Metric")
	table.AddColumn("Value")
	table.AddRow("Total Revenue", "$2,000.00")
	table.AddRow("Units Sold", 42)

	out := table.Render()
	assert.Contains(t, out, "Metric")
	assert.Contains(t, out, "Total Revenue")
	assert.Contains(t, out, "42")
}
