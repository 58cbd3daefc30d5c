package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/hmwm/akina-halo/internal/config"
	"github.com/hmwm/akina-halo/internal/content"
	"github.com/hmwm/akina-halo/internal/i18n"
	"github.com/hmwm/akina-halo/internal/models"
	"github.com/hmwm/akina-halo/internal/observability"
	"github.com/hmwm/akina-halo/internal/service/notify"
	"github.com/hmwm/akina-halo/internal/validation"
)

// PreviewBasePath prefixes every preview URL.
const PreviewBasePath = "/theme-preview/"

// Options holds the timing and size limits of the action layer.
type Options struct {
	// Simulated backend latency. Zero disables the wait.
	SaveDelay     time.Duration
	FileSaveDelay time.Duration
	PreviewDelay  time.Duration

	// MaxFileSize caps saved file content. Zero disables the check.
	MaxFileSize int64
}

// OptionsFromConfig maps the theme section of the configuration to Options.
func OptionsFromConfig(cfg config.ThemeConfig) Options {
	return Options{
		SaveDelay:     cfg.SaveDelay,
		FileSaveDelay: cfg.FileSaveDelay,
		PreviewDelay:  cfg.PreviewDelay,
		MaxFileSize:   int64(cfg.MaxFileSize),
	}
}

// Dependencies are the collaborators of ThemeDevelopmentService.
type Dependencies struct {
	Store          *ThemeStore
	Files          *FileRegistry
	Provider       content.Provider
	ThemeValidator *validation.ThemeValidator
	FileValidators *validation.Registry
	Notifier       *notify.Service
}

// ThemeDevelopmentService is the action layer of the theme development session.
//
// Every action clears the session error when it starts and moves the session
// into a loading state until it finishes. Save-style actions report failure by
// returning false. Fetch-style actions record the error and return it.
// Validation problems are data and never fail an action.
type ThemeDevelopmentService struct {
	store          *ThemeStore
	files          *FileRegistry
	provider       content.Provider
	themeValidator *validation.ThemeValidator
	fileValidators *validation.Registry
	notifier       *notify.Service
	status         *StatusTracker
	opts           Options
	logger         *slog.Logger
	now            func() time.Time

	previewMu   sync.Mutex
	lastPreview int64
}

// NewThemeDevelopmentService creates the action layer. Missing validators and
// notifier fall back to defaults using the English catalog.
func NewThemeDevelopmentService(deps Dependencies, opts Options) *ThemeDevelopmentService {
	notifier := deps.Notifier
	if notifier == nil {
		notifier = notify.New(notify.DefaultMaxNotifications, nil)
	}
	msg := notifier.Localizer()

	themeValidator := deps.ThemeValidator
	if themeValidator == nil {
		themeValidator = validation.NewThemeValidator(msg)
	}
	fileValidators := deps.FileValidators
	if fileValidators == nil {
		fileValidators = validation.NewDefaultRegistry(msg)
	}

	return &ThemeDevelopmentService{
		store:          deps.Store,
		files:          deps.Files,
		provider:       deps.Provider,
		themeValidator: themeValidator,
		fileValidators: fileValidators,
		notifier:       notifier,
		status:         NewStatusTracker(),
		opts:           opts,
		logger:         slog.Default(),
		now:            time.Now,
	}
}

// WithLogger sets the logger for the service.
func (s *ThemeDevelopmentService) WithLogger(logger *slog.Logger) *ThemeDevelopmentService {
	s.logger = logger
	return s
}

// Config returns the stored theme configuration.
func (s *ThemeDevelopmentService) Config() models.ThemeConfig {
	return s.store.Get()
}

// Files returns the file registry of the session.
func (s *ThemeDevelopmentService) Files() *FileRegistry {
	return s.files
}

// Notifier returns the notification service.
func (s *ThemeDevelopmentService) Notifier() *notify.Service {
	return s.notifier
}

// Status returns the loading/error aggregate of in-flight actions.
func (s *ThemeDevelopmentService) Status() Status {
	return s.status.Status()
}

// SaveTheme persists cfg and makes it the stored configuration.
func (s *ThemeDevelopmentService) SaveTheme(ctx context.Context, cfg models.ThemeConfig) bool {
	ok, _ := s.SaveThemeWithOutcome(ctx, cfg)
	return ok
}

// SaveThemeWithOutcome is SaveTheme returning the outcome of the call.
func (s *ThemeDevelopmentService) SaveThemeWithOutcome(ctx context.Context, cfg models.ThemeConfig) (bool, *models.Outcome) {
	outcome := s.status.Begin(ActionSaveTheme)
	var err error
	defer observability.TimedOperationWithError(ctx, s.logger, ActionSaveTheme, &err)()

	err = s.saveTheme(ctx, cfg)
	s.status.Finish(outcome, err)
	if err != nil {
		s.notifier.Error(i18n.KeySaveFailed, cfg.Name, err.Error())
		return false, outcome
	}

	s.notifier.Success(models.EventSaveCompleted, i18n.KeySaveSuccess, cfg.Name)
	s.regenerateDescriptor(ctx, cfg)
	return true, outcome
}

func (s *ThemeDevelopmentService) saveTheme(ctx context.Context, cfg models.ThemeConfig) error {
	if err := wait(ctx, s.opts.SaveDelay); err != nil {
		return models.WithCode(models.ErrCodeSave, err)
	}
	if err := s.store.Save(ctx, cfg); err != nil {
		return models.WithCode(models.ErrCodeSave, err)
	}
	return nil
}

// regenerateDescriptor rewrites theme.yaml in the registry for cfg.
// A failure is logged and does not fail the save.
func (s *ThemeDevelopmentService) regenerateDescriptor(ctx context.Context, cfg models.ThemeConfig) {
	if _, ok := s.files.Get(models.DescriptorFileName); !ok {
		return
	}
	existing, err := s.files.Open(ctx, models.DescriptorFileName)
	if err != nil {
		s.logger.WarnContext(ctx, "loading theme descriptor for regeneration",
			slog.String("error", err.Error()))
		existing = ""
	}
	rendered, err := RenderDescriptor(existing, cfg)
	if err != nil {
		s.logger.WarnContext(ctx, "rendering theme descriptor", slog.String("error", err.Error()))
		return
	}
	if rendered == existing {
		return
	}
	if err := s.files.SetContent(models.DescriptorFileName, rendered); err != nil {
		s.logger.WarnContext(ctx, "storing theme descriptor", slog.String("error", err.Error()))
		return
	}
	s.notifier.Info(models.EventConfigChanged, i18n.KeyConfigChanged, cfg.Name)
}

// ValidateTheme checks cfg. Problems are reported in the result, never as an error.
func (s *ThemeDevelopmentService) ValidateTheme(ctx context.Context, cfg models.ThemeConfig) models.ValidationResult {
	result, _ := s.ValidateThemeWithOutcome(ctx, cfg)
	return result
}

// ValidateThemeWithOutcome is ValidateTheme returning the outcome of the call.
func (s *ThemeDevelopmentService) ValidateThemeWithOutcome(ctx context.Context, cfg models.ThemeConfig) (models.ValidationResult, *models.Outcome) {
	outcome := s.status.Begin(ActionValidateTheme)

	result, err := s.guardValidation(func() models.ValidationResult {
		return s.themeValidator.Validate(cfg)
	})
	s.status.Finish(outcome, err)
	if err != nil {
		s.logger.ErrorContext(ctx, "theme validation failed", slog.String("error", err.Error()))
		return result, outcome
	}

	if result.Valid {
		s.notifier.Success(models.EventValidationCompleted, i18n.KeyValidationSuccess, cfg.Name)
	} else {
		s.notifier.Notify(models.NotifyError, models.EventValidationCompleted, i18n.KeyValidationFailed, cfg.Name)
	}
	return result, outcome
}

// ValidateFile checks content with the validator registered for the extension of fileName.
func (s *ThemeDevelopmentService) ValidateFile(ctx context.Context, fileName, text string) models.ValidationResult {
	result, _ := s.ValidateFileWithOutcome(ctx, fileName, text)
	return result
}

// ValidateFileWithOutcome is ValidateFile returning the outcome of the call.
func (s *ThemeDevelopmentService) ValidateFileWithOutcome(ctx context.Context, fileName, text string) (models.ValidationResult, *models.Outcome) {
	outcome := s.status.Begin(ActionValidateFile)

	result, err := s.guardValidation(func() models.ValidationResult {
		return s.fileValidators.Validate(fileName, text)
	})
	s.status.Finish(outcome, err)
	if err != nil {
		s.logger.ErrorContext(ctx, "file validation failed",
			slog.String("file", fileName),
			slog.String("error", err.Error()))
	}
	return result, outcome
}

// guardValidation runs fn, turning a panic into an invalid result carrying
// the panic message as its only error.
func (s *ThemeDevelopmentService) guardValidation(fn func() models.ValidationResult) (result models.ValidationResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprint(r)
			if msg == "" {
				msg = s.notifier.Localizer().T(i18n.KeyValidationError)
			}
			err = models.WithCode(models.ErrCodeValidation, errors.New(msg))
			result = models.NewValidationResult([]string{msg}, nil)
		}
	}()
	return fn(), nil
}

// GetFileContent returns the content of fileName from the content provider.
// Registered files are cached after the first fetch.
func (s *ThemeDevelopmentService) GetFileContent(ctx context.Context, fileName string) (string, error) {
	text, _, err := s.GetFileContentWithOutcome(ctx, fileName)
	return text, err
}

// GetFileContentWithOutcome is GetFileContent returning the outcome of the call.
func (s *ThemeDevelopmentService) GetFileContentWithOutcome(ctx context.Context, fileName string) (string, *models.Outcome, error) {
	outcome := s.status.Begin(ActionGetFileContent)
	var err error
	defer observability.TimedOperationWithError(ctx, s.logger, ActionGetFileContent, &err)()

	var text string
	if _, registered := s.files.Get(fileName); registered {
		text, err = s.files.Open(ctx, fileName)
	} else {
		text, err = s.provider.Get(ctx, s.store.Name(), adHocFile(fileName))
	}
	if err != nil {
		code := models.ErrCodeFileReadError
		if errors.Is(err, models.ErrNotFound) {
			code = models.ErrCodeFileNotFound
		}
		err = models.WithCode(code, err)
	}

	s.status.Finish(outcome, err)
	if err != nil {
		return "", outcome, err
	}
	return text, outcome, nil
}

// adHocFile describes a file that is not in the registry.
func adHocFile(name string) models.FileInfo {
	t, _ := models.ClassifyFile(name)
	return models.FileInfo{Name: name, Type: t, Path: DefaultPath(name)}
}

// SaveFile writes content to fileName through the provider and stores it on
// the registry entry. Unregistered files with a known extension are added.
// A name whose extension is not in models.FileExtensions, such as notes.txt,
// cannot be classified and fails with ErrUnsupportedFileType.
func (s *ThemeDevelopmentService) SaveFile(ctx context.Context, fileName, text string) bool {
	ok, _ := s.SaveFileWithOutcome(ctx, fileName, text)
	return ok
}

// SaveFileWithOutcome is SaveFile returning the outcome of the call.
func (s *ThemeDevelopmentService) SaveFileWithOutcome(ctx context.Context, fileName, text string) (bool, *models.Outcome) {
	outcome := s.status.Begin(ActionSaveFile)
	var err error
	defer observability.TimedOperationWithError(ctx, s.logger, ActionSaveFile, &err)()

	err = s.saveFile(ctx, fileName, text)
	s.status.Finish(outcome, err)
	if err != nil {
		s.notifier.Error(i18n.KeyFileSaveFailed, fileName, err.Error())
		return false, outcome
	}

	s.notifier.Success(models.EventFileChanged, i18n.KeyFileSaveSuccess, fileName)
	return true, outcome
}

func (s *ThemeDevelopmentService) saveFile(ctx context.Context, fileName, text string) error {
	if err := wait(ctx, s.opts.FileSaveDelay); err != nil {
		return models.WithCode(models.ErrCodeFileWriteError, err)
	}
	if s.opts.MaxFileSize > 0 && int64(len(text)) > s.opts.MaxFileSize {
		return models.WithCode(models.ErrCodeFileWriteError,
			fmt.Errorf("%s is %d bytes: %w", fileName, len(text), models.ErrFileTooLarge))
	}

	file, registered := s.files.Get(fileName)
	if !registered {
		added, err := s.files.Add(fileName, "")
		if err != nil {
			return models.WithCode(models.ErrCodeFileWriteError, err)
		}
		file = added
	}

	if err := s.provider.Put(ctx, s.store.Name(), file, text); err != nil {
		if !registered {
			_ = s.files.Remove(fileName)
		}
		return models.WithCode(models.ErrCodeFileWriteError, err)
	}
	return s.files.SetContent(fileName, text)
}

// GeneratePreview returns a fresh preview URL for the stored theme.
// Successive URLs carry strictly increasing millisecond timestamps.
func (s *ThemeDevelopmentService) GeneratePreview(ctx context.Context) (string, error) {
	previewURL, _, err := s.GeneratePreviewWithOutcome(ctx)
	return previewURL, err
}

// GeneratePreviewWithOutcome is GeneratePreview returning the outcome of the call.
func (s *ThemeDevelopmentService) GeneratePreviewWithOutcome(ctx context.Context) (string, *models.Outcome, error) {
	outcome := s.status.Begin(ActionGeneratePreview)
	var err error
	defer observability.TimedOperationWithError(ctx, s.logger, ActionGeneratePreview, &err)()

	if err = wait(ctx, s.opts.PreviewDelay); err != nil {
		err = models.WithCode(models.ErrCodePreview, err)
		s.status.Finish(outcome, err)
		return "", outcome, err
	}

	previewURL := fmt.Sprintf("%s?t=%d", s.GetPreviewURL(), s.nextPreviewStamp())
	s.status.Finish(outcome, nil)
	s.notifier.Info(models.EventPreviewUpdated, i18n.KeyPreviewGenerated, previewURL)
	return previewURL, outcome, nil
}

func (s *ThemeDevelopmentService) nextPreviewStamp() int64 {
	s.previewMu.Lock()
	defer s.previewMu.Unlock()

	stamp := s.now().UnixMilli()
	if stamp <= s.lastPreview {
		stamp = s.lastPreview + 1
	}
	s.lastPreview = stamp
	return stamp
}

// GetPreviewURL returns the preview location of the stored theme without a cache-buster.
func (s *ThemeDevelopmentService) GetPreviewURL() string {
	return PreviewBasePath + url.PathEscape(s.store.Name())
}

// HandleFileChange reacts to an external change of the file at relPath in the
// theme workspace. Registered files are refetched on next open. A change whose
// content matches the cached content, such as the echo of our own SaveFile,
// is ignored. A removed file is reported like any other change.
func (s *ThemeDevelopmentService) HandleFileChange(relPath string) {
	file, ok := s.files.FindByPath(relPath)
	if !ok {
		s.logger.Debug("ignoring change to unregistered file", slog.String("path", relPath))
		return
	}
	if file.Content != nil {
		current, err := s.provider.Get(context.Background(), s.store.Name(), file)
		if err == nil && current == *file.Content {
			s.logger.Debug("ignoring unchanged file", slog.String("file", file.Name))
			return
		}
	}
	s.files.Invalidate(file.Name)
	s.notifier.Info(models.EventFileChanged, i18n.KeyFileChanged, file.Name, file.Name)
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
