package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Order", "order"},
		{"OrderLine", "order_line"},
		{"HTTPSConnection", "https_connection"},
		{"orderLine", "order_line"},
		{"already_snake", "already_snake"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToSnakeCase(tt.input))
		})
	}
}

func TestUpperLowerFirst(t *testing.T) {
	assert.Equal(t, "Age", UpperFirst("age"))
	assert.Equal(t, "Ärger", UpperFirst("ärger"))
	assert.Equal(t, "", UpperFirst(""))
	assert.Equal(t, "age", LowerFirst("Age"))
	assert.Equal(t, "setAge", LowerFirst("SetAge"))
}

func TestReceiverName(t *testing.T) {
	assert.Equal(t, "o", ReceiverName("Order"))
	assert.Equal(t, "b", ReceiverName("box"))
	assert.Equal(t, "x", ReceiverName(""))
}

func TestHelperPrefix(t *testing.T) {
	assert.Equal(t, "person", HelperPrefix("Person"))
	assert.Equal(t, "_person", HelperPrefix("person"))
	assert.Equal(t, "__person", HelperPrefix("_person"))
}

func TestFileStem(t *testing.T) {
	assert.Equal(t, "person", FileStem("Person"))
	assert.Equal(t, "order_line", FileStem("OrderLine"))

	seen := map[string]string{}
	for _, name := range []string{"Person", "person", "OrderLine", "orderLine", "Order_Line", "HTTPServer", "HttpServer"} {
		stem := FileStem(name)
		assert.NotContains(t, seen, strings.ToLower(stem), "%s and %s", name, seen[strings.ToLower(stem)])
		seen[strings.ToLower(stem)] = name
	}
	assert.Regexp(t, `^person\.[0-9a-f]{8}$`, FileStem("person"))
}
