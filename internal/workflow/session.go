// internal/workflow/session.go
//
// The try-on workflow: collect inputs, validate, generate, show the result,
// retry with tweaks, start over. The session owns the "was a credit already
// charged for this attempt" bookkeeping; the entitlement store itself makes
// no idempotency promise.
package workflow

import (
	"context"
	"encoding/base64"
	"strings"
	"sync"

	"sareestage-backend/internal/entitlement"
	"sareestage-backend/internal/models"
	"sareestage-backend/internal/upload"
	apperrors "sareestage-backend/pkg/errors"
)

type State string

const (
	StateCollecting      State = "collecting"
	StateValidating      State = "validating"
	StateGenerating      State = "generating"
	StateResult          State = "result"
	StateRetryGenerating State = "retry_generating"
)

// Generator is the generation collaborator as seen by the workflow.
type Generator interface {
	Generate(ctx context.Context, req *models.GenerateRequest) (string, error)
}

// IdentityResolver yields the identity a session charges credits against.
// auth.Service satisfies it.
type IdentityResolver interface {
	ResolveIdentity() (string, error)
}

// Draft holds the inputs gathered on the upload screen.
type Draft struct {
	ModelImage        *upload.UploadedImage
	BodyImage         *upload.UploadedImage
	PalluImage        *upload.UploadedImage
	BodyText          string
	PalluText         string
	BlouseType        string
	BlouseDescription string
	Consented         bool
}

// Session is one user's pass through the try-on flow. It is created at
// session start and torn down at logout; all state lives here rather than in
// ambient globals.
type Session struct {
	identity     string
	entitlements entitlement.Service
	generator    Generator

	mu    sync.Mutex
	state State
	busy  bool
	draft Draft

	// retained inputs for retries, fixed at the moment generation begins
	retained *models.GenerateRequest

	generatedImage string
	charged        bool

	err      error
	retryErr error
	warning  string
}

func NewSession(identity string, entitlements entitlement.Service, generator Generator) *Session {
	return &Session{
		identity:     identity,
		entitlements: entitlements,
		generator:    generator,
		state:        StateCollecting,
		draft:        Draft{BlouseType: models.BlouseRunning},
	}
}

// StartSession resolves the active identity and opens a session for it. The
// identity is fixed for the session's lifetime; a login or logout means
// tearing the session down and starting a new one.
func StartSession(resolver IdentityResolver, entitlements entitlement.Service, generator Generator) (*Session, error) {
	identity, err := resolver.ResolveIdentity()
	if err != nil {
		return nil, err
	}
	return NewSession(identity, entitlements, generator), nil
}

// --- input collection ---

// AttachModelImage validates and stores the photo of the person. On a
// validation failure the previously accepted image is left untouched.
func (s *Session) AttachModelImage(name, mimeType string, data []byte) error {
	img, err := upload.Validate(name, mimeType, data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.ModelImage = img
	s.err = nil
	return nil
}

func (s *Session) AttachBodyImage(name, mimeType string, data []byte) error {
	img, err := upload.Validate(name, mimeType, data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.BodyImage = img
	return nil
}

func (s *Session) AttachPalluImage(name, mimeType string, data []byte) error {
	img, err := upload.Validate(name, mimeType, data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.PalluImage = img
	return nil
}

func (s *Session) SetSareeText(bodyText, palluText string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.BodyText = bodyText
	s.draft.PalluText = palluText
}

func (s *Session) SetBlouse(blouseType, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.BlouseType = blouseType
	s.draft.BlouseDescription = description
}

func (s *Session) SetConsent(consented bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Consented = consented
}

// --- transitions ---

// Submit runs the initial generation. Guard failures keep the session in
// Collecting with a specific message and make no network call. On success a
// credit is debited exactly once and the inputs are retained for retries.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()

	if s.busy {
		s.mu.Unlock()
		return apperrors.NewValidationError("A generation is already in progress.")
	}
	if s.state != StateCollecting {
		s.mu.Unlock()
		return apperrors.NewValidationError("Please start over before submitting a new try-on.")
	}

	s.state = StateValidating
	if err := s.validateDraft(); err != nil {
		s.state = StateCollecting
		s.err = err
		s.mu.Unlock()
		return err
	}

	// Zero-credit gate: blocked before any network call.
	balance, err := s.entitlements.GetBalance(s.identity)
	if err != nil {
		s.state = StateCollecting
		s.err = err
		s.mu.Unlock()
		return err
	}
	if balance.Credits == 0 {
		gateErr := apperrors.NewInsufficientCreditsError()
		s.state = StateCollecting
		s.err = gateErr
		s.mu.Unlock()
		return gateErr
	}

	req := s.buildRequest("")
	s.state = StateGenerating
	s.busy = true
	s.mu.Unlock()

	imageData, genErr := s.generator.Generate(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false

	if genErr != nil {
		// No debit on failure; entered inputs stay so nothing is re-uploaded.
		s.state = StateCollecting
		s.err = genErr
		return genErr
	}

	// Success is the only point where a credit is consumed, and only once
	// for the whole attempt regardless of later retries.
	if !s.charged {
		if _, debitErr := s.entitlements.Debit(s.identity); debitErr != nil {
			// Bookkeeping failed but the result is real: flag it, don't hide it.
			s.warning = "Your result is ready, but the credit balance could not be updated: " + apperrors.GetMessage(debitErr)
		}
		s.charged = true
	}

	s.retained = req
	s.generatedImage = imageData
	s.err = nil
	s.state = StateResult
	return nil
}

// Retry re-runs generation with tweak instructions appended. It never
// debits, and a failure leaves the last successful image in place.
func (s *Session) Retry(ctx context.Context, tweakIDs []string) error {
	s.mu.Lock()

	if s.busy {
		s.mu.Unlock()
		return apperrors.NewValidationError("A generation is already in progress.")
	}
	if s.state != StateResult {
		s.mu.Unlock()
		return apperrors.NewValidationError("There is no result to retry yet.")
	}
	if s.retained == nil {
		err := apperrors.NewValidationError("Cannot retry without the original inputs. Please start over.")
		s.state = StateCollecting
		s.err = err
		s.mu.Unlock()
		return err
	}

	req := &models.GenerateRequest{
		ModelImage:  s.retained.ModelImage,
		Spec:        s.retained.Spec,
		TweakPrompt: BuildTweakPrompt(tweakIDs),
	}

	s.state = StateRetryGenerating
	s.busy = true
	s.mu.Unlock()

	imageData, genErr := s.generator.Generate(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	s.state = StateResult

	if genErr != nil {
		// Scoped to the retry: the previously generated image stays visible.
		s.retryErr = genErr
		return genErr
	}

	s.generatedImage = imageData
	s.retryErr = nil
	return nil
}

// StartOver unconditionally clears the generated image, the specification,
// the retained inputs and any error state.
func (s *Session) StartOver() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateCollecting
	s.draft = Draft{BlouseType: models.BlouseRunning}
	s.retained = nil
	s.generatedImage = ""
	s.charged = false
	s.err = nil
	s.retryErr = nil
	s.warning = ""
}

// --- accessors ---

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Identity() string {
	return s.identity
}

func (s *Session) GeneratedImage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generatedImage
}

// Err is the error attached to the Collecting state, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// RetryErr is the error scoped to the last retry, if any.
func (s *Session) RetryErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.retryErr
}

// Warning reports non-fatal bookkeeping problems, such as a failed balance
// write after a successful generation.
func (s *Session) Warning() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.warning
}

// --- helpers ---

func (s *Session) validateDraft() error {
	switch {
	case s.draft.ModelImage == nil:
		return apperrors.NewValidationError("A model image is required.")
	case s.draft.BodyImage == nil:
		return apperrors.NewValidationError("An image for the Main Saree Body is required.")
	case s.draft.PalluImage == nil:
		return apperrors.NewValidationError("An image for the Saree Pallu is required.")
	case s.draft.BlouseType == models.BlouseCustom && strings.TrimSpace(s.draft.BlouseDescription) == "":
		return apperrors.NewValidationError("Please describe the custom blouse.")
	case !s.draft.Consented:
		return apperrors.NewValidationError("You must agree to the Terms of Service and Privacy Policy to proceed.")
	}
	return nil
}

func (s *Session) buildRequest(tweakPrompt string) *models.GenerateRequest {
	return &models.GenerateRequest{
		ModelImage: toImageData(s.draft.ModelImage),
		Spec: &models.SareeSpecification{
			Body: models.SareePart{
				Image: toImageData(s.draft.BodyImage),
				Text:  s.draft.BodyText,
			},
			Pallu: models.SareePart{
				Image: toImageData(s.draft.PalluImage),
				Text:  s.draft.PalluText,
			},
			Blouse: models.BlouseSpec{
				Type:        s.draft.BlouseType,
				Description: s.draft.BlouseDescription,
			},
		},
		TweakPrompt: tweakPrompt,
	}
}

func toImageData(img *upload.UploadedImage) *models.ImageData {
	if img == nil {
		return nil
	}
	return &models.ImageData{
		MimeType: img.MimeType,
		Data:     base64.StdEncoding.EncodeToString(img.Data),
	}
}
