package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock_JSONFence(t *testing.T) {
	input := "```json\n{\"key\": \"value\"}\n```"
	assert.Equal(t, `{"key": "value"}`, CleanJSONBlock(input))
}

func TestCleanJSONBlock_GenericFence(t *testing.T) {
	input := "```\n{\"key\": \"value\"}\n```"
	assert.Equal(t, `{"key": "value"}`, CleanJSONBlock(input))
}

func TestCleanJSONBlock_FenceWithLanguageID(t *testing.T) {
	input := "```javascript\n{\"key\": \"value\"}\n```"
	assert.Equal(t, `{"key": "value"}`, CleanJSONBlock(input))
}

func TestCleanJSONBlock_NoFence(t *testing.T) {
	input := `{"key": "value"}`
	assert.Equal(t, `{"key": "value"}`, CleanJSONBlock(input))
}

func TestCleanJSONBlock_WhitespaceOnly(t *testing.T) {
	assert.Equal(t, "", CleanJSONBlock("   \n\t  "))
}

func TestCleanJSONBlock_TrailingTextAfterFence(t *testing.T) {
	input := "```json\n{\"a\": 1}\n```\n"
	assert.Equal(t, `{"a": 1}`, CleanJSONBlock(input))
}

func TestCleanLabelReply_Plain(t *testing.T) {
	assert.Equal(t, "Software Engineer", CleanLabelReply("Software Engineer"))
}

func TestCleanLabelReply_Quoted(t *testing.T) {
	assert.Equal(t, "Software Engineer", CleanLabelReply(`"Software Engineer"`))
}

func TestCleanLabelReply_MarkdownBold(t *testing.T) {
	assert.Equal(t, "Data Scientist", CleanLabelReply("**Data Scientist**"))
}

func TestCleanLabelReply_Numbered(t *testing.T) {
	assert.Equal(t, "Tech Lead", CleanLabelReply("1. Tech Lead"))
}

func TestCleanLabelReply_ListDash(t *testing.T) {
	assert.Equal(t, "Engineering Manager", CleanLabelReply("- Engineering Manager"))
}

func TestCleanLabelReply_MultiLineKeepsFirst(t *testing.T) {
	assert.Equal(t, "QA Engineer", CleanLabelReply("QA Engineer\nBecause it matches best."))
}
