package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/configsmith/device-reconciler/internal/adapters/backup"
	"github.com/configsmith/device-reconciler/internal/adapters/session"
	"github.com/configsmith/device-reconciler/internal/config"
	"github.com/configsmith/device-reconciler/internal/core/ports"
	"github.com/configsmith/device-reconciler/internal/core/service"
	"github.com/configsmith/device-reconciler/internal/errors"
	"github.com/configsmith/device-reconciler/internal/log"
	jsonreport "github.com/configsmith/device-reconciler/internal/reporting/json"
	"github.com/configsmith/device-reconciler/internal/reporting/text"
)

// BuildApplicationFromViper assembles the full application: configuration,
// logger, device session, backup store, reporter and engine. Every
// configuration problem is fatal here, before any device contact beyond the
// session handshake.
func BuildApplicationFromViper(ctx context.Context, v *viper.Viper) (*Application, error) {
	cfg := config.DefaultConfig()
	err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigParseError, "failed to unmarshal configuration")
	}

	logCfg := log.Config{Level: cfg.Settings.LogLevel, Format: cfg.Settings.LogFormat}
	logger, err := log.NewLogger(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize logger: %v\n", err)
		return nil, errors.Wrap(err, errors.CodeInternal, "logger initialization failed")
	}
	logger.Infof(ctx, "Logger initialized (Level: %s, Format: %s)", cfg.Settings.LogLevel, cfg.Settings.LogFormat)
	if v.ConfigFileUsed() != "" {
		logger.Debugf(ctx, "Using configuration file: %s", v.ConfigFileUsed())
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err = validate.StructCtx(ctx, cfg); err != nil {
		var details strings.Builder
		details.WriteString("Configuration validation failed:")
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range validationErrors {
				details.WriteString(fmt.Sprintf("\n - Field '%s': failed on '%s' (value: '%v')", fe.Namespace(), fe.Tag(), fe.Value()))
			}
		}
		wrappedErr := errors.NewUserFacing(errors.CodeConfigValidation, details.String(), "Please check your configuration file or flags.")
		logger.Errorf(ctx, wrappedErr, "Configuration validation failed")
		return nil, wrappedErr
	}
	if err = cfg.Validate(); err != nil {
		logger.Errorf(ctx, err, "Configuration validation failed")
		return nil, err
	}
	logger.Debugf(ctx, "Configuration validated successfully")

	sessLog := logger.WithFields(map[string]any{"component": "session"})
	sess, err := session.Dial(ctx, session.Config{
		Host:            cfg.Device.Host,
		Port:            cfg.Device.Port,
		User:            cfg.Device.User,
		Password:        cfg.Device.Password,
		KeyFile:         cfg.Device.KeyFile,
		Timeout:         cfg.Device.Timeout,
		CommandInterval: cfg.Device.CommandInterval,
	}, sessLog)
	if err != nil {
		return nil, err
	}
	sessLog.Infof(ctx, "Connected to %s", cfg.Device.Host)

	store := backup.NewFileStore(backup.Config{
		Filename: cfg.Run.BackupOptions.Filename,
		DirPath:  cfg.Run.BackupOptions.DirPath,
	}, logger.WithFields(map[string]any{"component": "backup"}))

	var reporter ports.Reporter
	switch cfg.Settings.ReporterType {
	case text.ReporterTypeText, "":
		reporter, err = text.NewReporter(text.Config{NoColor: cfg.Settings.NoColor},
			logger.WithFields(map[string]any{"component": "reporter", "type": text.ReporterTypeText}))
	case jsonreport.ReporterTypeJSON:
		reporter, err = jsonreport.NewReporter(jsonreport.Config{},
			logger.WithFields(map[string]any{"component": "reporter", "type": jsonreport.ReporterTypeJSON}))
	default:
		sess.Close()
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("unsupported reporter type: %s", cfg.Settings.ReporterType), "Supported: text, json")
	}
	if err != nil {
		sess.Close()
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize reporter")
	}

	engine, err := service.NewEngine(sess, store, logger.WithFields(map[string]any{"component": "engine"}), cfg)
	if err != nil {
		sess.Close()
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize reconciliation engine")
	}

	logger.Infof(ctx, "Application bootstrap complete")
	return NewApplication(engine, reporter, logger, sess), nil
}
