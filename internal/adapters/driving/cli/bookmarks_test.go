package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookmarksCmd_AddAndRemove(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	rootCmd.SetArgs([]string{"bookmarks", "add", "en.wikipedia.org/wiki/Shark"})
	assert.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "Bookmarked")

	buf.Reset()
	rootCmd.SetArgs([]string{"bookmarks", "remove", "en.wikipedia.org/wiki/Shark"})
	assert.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "Removed bookmark")
}

func TestBookmarksCmd_RemoveMissingBookmarkFails(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"bookmarks", "remove", "never.bookmarked.com"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
}
