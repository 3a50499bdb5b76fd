package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyCmd_Use(t *testing.T) {
	assert.Equal(t, "classify [message]", classifyCmd.Use)
}

func TestClassifyCmd_Short(t *testing.T) {
	assert.Equal(t, "Classify a visitor message's intent", classifyCmd.Short)
}

func TestClassifyCmd_RequiresExactlyOneArg(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"classify"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestClassifyCmd_PrintsIntent(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"classify", "compare brewline versus the other distributor tools"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "comparison")
	assert.Contains(t, buf.String(), "Confidence:")
}

func TestClassifyCmd_JSONOutput(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"classify", "--json", "how long does it take to set it up and migrate"})
	defer func() {
		rootCmd.SetArgs(nil)
		classifyJSON = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `"intent"`)
	assert.Contains(t, buf.String(), "implementation")
}

func TestClassifyCmd_NotesLowConfidence(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	// off_topic wins here but product and feature signals dilute its
	// confidence below the 0.80 threshold, so the remap note shows.
	rootCmd.SetArgs([]string{"classify", "weather jokes and sports recipes about the brewline platform dashboard api"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()


	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "effective intent is use_case")
}

func TestClassifyCmd_FailsWithoutService(t *testing.T) {
	SetServices(nil, nil, nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"classify", "anything"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "classifier service not configured")
}
