package commands

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	testCases := []struct {
		args  []string
		start int
		end   int
		fails bool
	}{
		{args: nil, start: 258, end: 313},
		{args: []string{"300"}, start: 258, end: 300},
		{args: []string{"1", "5"}, start: 1, end: 5},
		{args: []string{"7", "7"}, start: 7, end: 7},
		{args: []string{"abc"}, fails: true},
		{args: []string{"1", "x"}, fails: true},
		{args: []string{"10", "5"}, fails: true},
		{args: []string{"200"}, fails: true},
		{args: []string{"1", "2", "3"}, fails: true},
	}

	for _, test := range testCases {
		start, end, err := parseRange(test.args, 258, 313)
		if test.fails {
			require.Error(t, err, test.args)
			continue
		}
		require.NoError(t, err, test.args)
		require.Equal(t, test.start, start, test.args)
		require.Equal(t, test.end, end, test.args)
	}
}
