package conversation

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/utils/platformerrors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// messageRules bounds a user message in characters; validator counts runes for max.
var messageRules = fmt.Sprintf("required,max=%d", MaxMessageLength)

// ValidateMessage checks a user message is between 1 and MaxMessageLength characters.
func ValidateMessage(ctx context.Context, content string) error {
	err := validate.Var(content, messageRules)
	if err == nil {
		return nil
	}
	if failedTag(err) == "required" {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"message must not be empty", err, "5b2f8a44-1d7e-4c61-8f0a-2e9c7d3b4a01")
	}
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
		fmt.Sprintf("message must be at most %d characters", MaxMessageLength), err, "5b2f8a44-1d7e-4c61-8f0a-2e9c7d3b4a02")
}

// ValidateCreateInput normalizes the mode and checks the rag document requirement.
func ValidateCreateInput(ctx context.Context, input *CreateInput) error {
	if input.Mode == "" {
		input.Mode = ModeOpen
	}
	if err := validate.Var(string(input.Mode), "oneof=open rag"); err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("mode must be 'open' or 'rag', got %q", input.Mode), err, "5b2f8a44-1d7e-4c61-8f0a-2e9c7d3b4a03")
	}
	// required_if treats an empty non-nil slice as present, so count explicitly.
	if input.Mode == ModeRAG && len(input.DocumentIDs) == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"document_ids required for RAG mode", nil, "5b2f8a44-1d7e-4c61-8f0a-2e9c7d3b4a04")
	}
	return ValidateMessage(ctx, input.FirstMessage)
}

func failedTag(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fieldErrs[0].Tag()
	}
	return ""
}

// TitleFrom derives a conversation title from its first message.
func TitleFrom(message string) string {
	if utf8.RuneCountInString(message) <= TitleLength {
		return message
	}
	runes := []rune(message)
	return string(runes[:TitleLength]) + "..."
}
