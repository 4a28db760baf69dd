package prompts

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerAllPrompts(manager *PromptManager) {
	manager.RegisterTemplate("gene_summary", NewGeneSummaryPrompt())
	manager.RegisterTemplate("pgx_consult", NewPGxConsultPrompt())
	manager.RegisterTemplate("literature_review", NewLiteratureReviewPrompt())
}

func TestPromptManager_RegisterTemplate(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	manager := NewPromptManager(logger)
	manager.RegisterTemplate("gene_summary", NewGeneSummaryPrompt())

	templates := manager.GetTemplateInfo()
	require.Len(t, templates, 1)
	assert.Equal(t, "gene_summary", templates[0].Name)
}

func TestPromptManager_GetPrompt(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	manager := NewPromptManager(logger)
	registerAllPrompts(manager)

	ctx := context.Background()

	tests := []struct {
		name        string
		promptName  string
		args        map[string]interface{}
		expectError bool
	}{
		{
			name:        "gene summary",
			promptName:  "gene_summary",
			args:        map[string]interface{}{"symbol": "BRCA1"},
			expectError: false,
		},
		{
			name:        "pgx consult",
			promptName:  "pgx_consult",
			args:        map[string]interface{}{"gene": "CYP2C19", "drug": "clopidogrel"},
			expectError: false,
		},
		{
			name:        "literature review",
			promptName:  "literature_review",
			args:        map[string]interface{}{"gene": "EGFR"},
			expectError: false,
		},
		{
			name:        "unknown prompt",
			promptName:  "nonexistent_prompt",
			args:        map[string]interface{}{},
			expectError: true,
		},
		{
			name:        "missing required argument",
			promptName:  "gene_summary",
			args:        map[string]interface{}{},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rendered, err := manager.GetPrompt(ctx, tt.promptName, tt.args)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, rendered)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, rendered)
				assert.Equal(t, tt.promptName, rendered.Name)
				assert.NotEmpty(t, rendered.Content)
				assert.NotEmpty(t, rendered.SystemPrompt)
				assert.NotEmpty(t, rendered.UserPrompt)
				assert.NotZero(t, rendered.GeneratedAt)
				assert.Equal(t, tt.args, rendered.Arguments)
			}
		})
	}
}

func TestPromptManager_ListPrompts(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	manager := NewPromptManager(logger)
	registerAllPrompts(manager)

	ctx := context.Background()
	promptList, err := manager.ListPrompts(ctx)

	require.NoError(t, err)
	require.NotNil(t, promptList)
	assert.Equal(t, 3, len(promptList.Prompts))
	assert.Equal(t, 3, promptList.Total)

	names := make(map[string]bool)
	for _, prompt := range promptList.Prompts {
		names[prompt.Name] = true
		assert.NotEmpty(t, prompt.Description)
		assert.NotEmpty(t, prompt.Version)
		assert.NotEmpty(t, prompt.Arguments)
	}

	assert.True(t, names["gene_summary"])
	assert.True(t, names["pgx_consult"])
	assert.True(t, names["literature_review"])
}

func TestPromptManager_GetPromptInfo(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	manager := NewPromptManager(logger)
	manager.RegisterTemplate("gene_summary", NewGeneSummaryPrompt())

	ctx := context.Background()

	info, err := manager.GetPromptInfo(ctx, "gene_summary")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "gene_summary", info.Name)
	assert.NotEmpty(t, info.Description)
	assert.NotEmpty(t, info.Arguments)

	info, err = manager.GetPromptInfo(ctx, "nonexistent")
	assert.Error(t, err)
	assert.Nil(t, info)
}

func TestPromptManager_GetPromptSchema(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	manager := NewPromptManager(logger)
	manager.RegisterTemplate("gene_summary", NewGeneSummaryPrompt())

	ctx := context.Background()

	schema, err := manager.GetPromptSchema(ctx, "gene_summary")
	require.NoError(t, err)
	require.NotNil(t, schema)

	assert.Equal(t, "object", schema["type"])

	properties, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, properties, "symbol")

	required, ok := schema["required"].([]string)
	require.True(t, ok)
	assert.Contains(t, required, "symbol")
}

func TestTemplateRenderer_RenderTemplate(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	renderer := NewTemplateRenderer(logger)

	template := "Hello {{name}}, you have {{count}} messages."
	params := map[string]interface{}{
		"name":  "Alice",
		"count": 5,
	}

	result := renderer.RenderTemplate(template, params)
	expected := "Hello Alice, you have 5 messages."

	assert.Equal(t, expected, result)
}

func TestTemplateRenderer_RenderMarkdown(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	renderer := NewTemplateRenderer(logger)

	sections := map[string]string{
		"title":        "Test Document",
		"overview":     "This is an overview section.",
		"instructions": "These are the instructions.",
	}

	result := renderer.RenderMarkdown(sections)

	assert.Contains(t, result, "# Test Document")
	assert.Contains(t, result, "## Overview")
	assert.Contains(t, result, "This is an overview section.")
	assert.Contains(t, result, "## Instructions")
	assert.Contains(t, result, "These are the instructions.")
}

func TestTemplateRenderer_FormatList(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	renderer := NewTemplateRenderer(logger)

	items := []string{"First item", "Second item", "Third item"}

	unorderedResult := renderer.FormatList(items, false)
	assert.Contains(t, unorderedResult, "- First item")
	assert.Contains(t, unorderedResult, "- Second item")
	assert.Contains(t, unorderedResult, "- Third item")

	orderedResult := renderer.FormatList(items, true)
	assert.Contains(t, orderedResult, "1. First item")
	assert.Contains(t, orderedResult, "2. Second item")
	assert.Contains(t, orderedResult, "3. Third item")
}

func TestTemplateRenderer_FormatTable(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	renderer := NewTemplateRenderer(logger)

	headers := []string{"Name", "Age", "City"}
	rows := [][]string{
		{"Alice", "30", "New York"},
		{"Bob", "25", "Boston"},
		{"Carol", "35", "Chicago"},
	}

	result := renderer.FormatTable(headers, rows)

	assert.Contains(t, result, "| Name | Age | City |")
	assert.Contains(t, result, "|---|---|---|")
	assert.Contains(t, result, "| Alice | 30 | New York |")
	assert.Contains(t, result, "| Bob | 25 | Boston |")
	assert.Contains(t, result, "| Carol | 35 | Chicago |")
}

func TestArgumentValidator_ValidateArguments(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	validator := NewArgumentValidator(logger)

	schema := []ArgumentInfo{
		{
			Name:        "required_string",
			Type:        "string",
			Required:    true,
			Constraints: []string{"min_length:3"},
		},
		{
			Name:     "optional_number",
			Type:     "number",
			Required: false,
		},
		{
			Name:        "enum_field",
			Type:        "string",
			Required:    false,
			Constraints: []string{"enum:option1,option2,option3"},
		},
	}

	tests := []struct {
		name        string
		args        map[string]interface{}
		expectError bool
		errorMsg    string
	}{
		{
			name: "Valid arguments",
			args: map[string]interface{}{
				"required_string": "valid_string",
				"optional_number": 42,
				"enum_field":      "option1",
			},
			expectError: false,
		},
		{
			name:        "Missing required argument",
			args:        map[string]interface{}{},
			expectError: true,
			errorMsg:    "required argument 'required_string' is missing",
		},
		{
			name: "Wrong type",
			args: map[string]interface{}{
				"required_string": "valid",
				"optional_number": "not_a_number",
			},
			expectError: true,
			errorMsg:    "must be a number",
		},
		{
			name: "String too short",
			args: map[string]interface{}{
				"required_string": "ab",
			},
			expectError: true,
			errorMsg:    "must be at least 3 characters long",
		},
		{
			name: "Invalid enum value",
			args: map[string]interface{}{
				"required_string": "valid",
				"enum_field":      "invalid_option",
			},
			expectError: true,
			errorMsg:    "must be one of: option1,option2,option3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateArguments(tt.args, schema)

			if tt.expectError {
				assert.Error(t, err)
				if tt.errorMsg != "" {
					assert.Contains(t, err.Error(), tt.errorMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGeneSummaryPrompt_Integration(t *testing.T) {
	ctx := context.Background()
	prompt := NewGeneSummaryPrompt()

	info := prompt.GetPromptInfo()
	assert.Equal(t, "gene_summary", info.Name)
	assert.NotEmpty(t, info.Description)
	assert.NotEmpty(t, info.Arguments)

	assert.True(t, prompt.SupportsPrompt("gene_summary"))
	assert.False(t, prompt.SupportsPrompt("unknown_prompt"))

	err := prompt.ValidateArguments(map[string]interface{}{"symbol": "BRCA1"})
	assert.NoError(t, err)

	err = prompt.ValidateArguments(map[string]interface{}{})
	assert.Error(t, err)

	rendered, err := prompt.RenderPrompt(ctx, map[string]interface{}{"symbol": "BRCA1"})
	require.NoError(t, err)
	require.NotNil(t, rendered)
	assert.Equal(t, "gene_summary", rendered.Name)
	assert.Contains(t, rendered.UserPrompt, "BRCA1")
	assert.NotZero(t, rendered.GeneratedAt)
}

func TestPGxConsultPrompt_Integration(t *testing.T) {
	ctx := context.Background()
	prompt := NewPGxConsultPrompt()

	info := prompt.GetPromptInfo()
	assert.Equal(t, "pgx_consult", info.Name)

	validArgs := map[string]interface{}{"gene": "CYP2C19", "drug": "clopidogrel"}
	err := prompt.ValidateArguments(validArgs)
	assert.NoError(t, err)

	rendered, err := prompt.RenderPrompt(ctx, validArgs)
	require.NoError(t, err)
	require.NotNil(t, rendered)
	assert.Equal(t, "pgx_consult", rendered.Name)
	assert.Contains(t, rendered.UserPrompt, "CYP2C19")
	assert.Contains(t, rendered.UserPrompt, "clopidogrel")
}

func TestLiteratureReviewPrompt_Integration(t *testing.T) {
	ctx := context.Background()
	prompt := NewLiteratureReviewPrompt()

	info := prompt.GetPromptInfo()
	assert.Equal(t, "literature_review", info.Name)

	err := prompt.ValidateArguments(map[string]interface{}{})
	assert.Error(t, err)

	validArgs := map[string]interface{}{"gene": "EGFR"}
	err = prompt.ValidateArguments(validArgs)
	assert.NoError(t, err)

	rendered, err := prompt.RenderPrompt(ctx, validArgs)
	require.NoError(t, err)
	require.NotNil(t, rendered)
	assert.Contains(t, rendered.UserPrompt, "EGFR")
}

func TestPromptManager_ConcurrentAccess(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	manager := NewPromptManager(logger)
	manager.RegisterTemplate("gene_summary", NewGeneSummaryPrompt())

	ctx := context.Background()
	args := map[string]interface{}{"symbol": "BRCA1"}

	const numGoroutines = 10
	done := make(chan bool, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer func() { done <- true }()
			rendered, err := manager.GetPrompt(ctx, "gene_summary", args)
			assert.NoError(t, err)
			assert.NotNil(t, rendered)
			assert.Equal(t, "gene_summary", rendered.Name)
		}()
	}

	for i := 0; i < numGoroutines; i++ {
		<-done
	}
}

func TestPromptManager_ErrorHandling(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	manager := NewPromptManager(logger)
	ctx := context.Background()

	rendered, err := manager.GetPrompt(ctx, "nonexistent", map[string]interface{}{})
	assert.Error(t, err)
	assert.Nil(t, rendered)
	assert.Contains(t, err.Error(), "no template found")

	info, err := manager.GetPromptInfo(ctx, "nonexistent")
	assert.Error(t, err)
	assert.Nil(t, info)

	schema, err := manager.GetPromptSchema(ctx, "nonexistent")
	assert.Error(t, err)
	assert.Nil(t, schema)
}
