package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamed0406/uptimetracker/internal/domain"
)

func TestLines_ExampleScenario(t *testing.T) {
	rs := domain.ResultSet{
		{Region: "us-east", Status: "up", ResponseTime: domain.Millis(120)},
		{Region: "eu-west", Status: "down"},
	}

	got := Lines(rs)

	assert.Equal(t, []string{
		"us-east: up (Response Time: 120 ms)",
		"eu-west: down",
	}, got)
}

func TestLines_NullResponseTimeHasNoSuffix(t *testing.T) {
	l := Line(domain.RegionResult{Region: "ap-south", Status: "down"})
	assert.Equal(t, "ap-south: down", l)
	assert.NotContains(t, l, "Response Time")
	assert.NotContains(t, l, "null")
	assert.NotContains(t, l, "N/A")
}

func TestLines_ZeroIsStillMeasured(t *testing.T) {
	assert.Equal(t, "x: up (Response Time: 0 ms)", Line(domain.RegionResult{Region: "x", Status: "up", ResponseTime: domain.Millis(0)}))
}

func TestLines_KeepOrderAndDuplicates(t *testing.T) {
	rs := domain.ResultSet{
		{Region: "b", Status: "up"},
		{Region: "a", Status: "up"},
		{Region: "b", Status: "down"},
	}
	got := Lines(rs)
	require.Len(t, got, 3)
	assert.Equal(t, "b: up", got[0])
	assert.Equal(t, "a: up", got[1])
	assert.Equal(t, "b: down", got[2])
}

func TestLines_EmptySet(t *testing.T) {
	got := Lines(domain.ResultSet{})
	require.NotNil(t, got)
	assert.Empty(t, got)

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, domain.ResultSet{}))
	assert.Equal(t, Heading+"\n", buf.String())
}

func TestEntries_MatchLines(t *testing.T) {
	rs := domain.ResultSet{
		{Region: "us-east", Status: "up", ResponseTime: domain.Millis(88.25)},
		{Region: "eu-west", Status: "down"},
	}
	es := Entries(rs)
	require.Len(t, es, 2)
	assert.True(t, es[0].HasResponseTime)
	assert.Equal(t, "88.25", es[0].ResponseTime)
	assert.False(t, es[1].HasResponseTime)
	assert.Empty(t, es[1].ResponseTime)
}

func TestText_DoesNotMutateInput(t *testing.T) {
	ms := domain.Millis(120)
	rs := domain.ResultSet{{Region: "us-east", Status: "up", ResponseTime: ms}}

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, rs))

	assert.Equal(t, 120.0, *rs[0].ResponseTime)
	assert.True(t, strings.HasSuffix(buf.String(), "  us-east: up (Response Time: 120 ms)\n"))
}
