package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	assert.True(t, strings.HasPrefix(String(), "coverpost version dev ("))
	assert.Equal(t, "dev", Short())

	oldCommit, oldDate := Commit, Date
	t.Cleanup(func() { Commit, Date = oldCommit, oldDate })
	Commit, Date = "0123456789abcdef", "2024-10-14T00:00:00Z"
	assert.Contains(t, String(), "commit: 01234567, built: 2024-10-14T00:00:00Z")
}
