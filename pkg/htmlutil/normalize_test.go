package htmlutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeText(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{input: "  CS 6601   Artificial\n\tIntelligence ", expected: "CS 6601 Artificial Intelligence"},
		{input: "CS 6601&nbsp;Artificial Intelligence", expected: "CS 6601 Artificial Intelligence"},
		{input: "CS 6601  Artificial Intelligence", expected: "CS 6601 Artificial Intelligence"},
		{input: "AT&amp;T", expected: "AT&T"},
		{input: "GPA&lt;B required", expected: "GPA<B required"},
		{input: "x&lt;y", expected: "x<y"},
		{input: "<b>kept</b>", expected: "<b>kept</b>"},
		{input: "a\u0000b", expected: "ab"},
		{input: "", expected: ""},
		{input: " \n ", expected: ""},
	}

	for _, test := range cases {
		require.Equal(t, test.expected, NormalizeText(test.input), test.input)
		require.Equal(t, test.expected, NormalizeText(test.expected), "normalizing twice: %s", test.input)
	}
}

func TestNormalizeMarkup(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{input: "<strong>CS 6250</strong>: Computer Networks", expected: "CS 6250: Computer Networks"},
		{input: "<p>Pick</p><p>two</p>", expected: "Pick two"},
		{input: "first<br>second", expected: "first second"},
		{input: "<script>var x = 1;</script>visible", expected: "visible"},
		{input: "GPA &lt; 3.0 &amp;&nbsp;<em>probation</em>", expected: "GPA < 3.0 & probation"},
		{input: "  plain\n text ", expected: "plain text"},
	}

	for _, test := range cases {
		require.Equal(t, test.expected, NormalizeMarkup(test.input), test.input)
	}
}

func TestCollapseWhitespace(t *testing.T) {
	require.Equal(t, "a b c", CollapseWhitespace(" a \r\n b c "))
	require.Equal(t, "", CollapseWhitespace("\t"))
}
