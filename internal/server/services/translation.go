package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/speechauth/internal/common"
	"github.com/dmitrijs2005/speechauth/internal/logging"
)

const (
	DefaultTargetLanguage = "en"
	AutoDetectLanguage    = "auto"
)

// Translator is the external translation collaborator. source is a language
// code or AutoDetectLanguage; detected is the language the text was found to be in.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (translated, detected string, err error)
}

// Translation is the outcome of TranslationService.Translate.
type Translation struct {
	OriginalText   string
	TranslatedText string
	SourceLanguage string
	TargetLanguage string
}

type TranslationService struct {
	translator Translator
	logger     logging.Logger
}

// NewTranslationService wraps translator; a nil translator makes every call
// that needs the upstream fail with common.ErrTranslatorUnavailable.
func NewTranslationService(translator Translator, logger logging.Logger) *TranslationService {
	return &TranslationService{
		translator: translator,
		logger:     logger.With("module", "translation_service"),
	}
}

// Translate skips the collaborator when target equals the source language
// (or "en" when the source is not given) and echoes the text back.
func (s *TranslationService) Translate(ctx context.Context, text, source, target string) (*Translation, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: no text provided", common.ErrorInvalidInput)
	}
	if target == "" {
		target = DefaultTargetLanguage
	}

	effectiveSource := source
	if effectiveSource == "" {
		effectiveSource = DefaultTargetLanguage
	}

	if target == effectiveSource {
		return &Translation{
			OriginalText:   text,
			TranslatedText: text,
			SourceLanguage: effectiveSource,
			TargetLanguage: target,
		}, nil
	}

	if s.translator == nil {
		return nil, common.ErrTranslatorUnavailable
	}

	requested := source
	if requested == "" {
		requested = AutoDetectLanguage
	}

	s.logger.Debug(ctx, "translating", "source", requested, "target", target, "length", len(text))

	translated, detected, err := s.translator.Translate(ctx, text, requested, target)
	if err != nil {
		return nil, fmt.Errorf("error translating text: %w", err)
	}
	if detected == "" {
		detected = requested
	}

	return &Translation{
		OriginalText:   text,
		TranslatedText: translated,
		SourceLanguage: detected,
		TargetLanguage: target,
	}, nil
}
