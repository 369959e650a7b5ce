package usecase

import (
	"sync/atomic"

	"voice-assistant-engine/internal/classifier"
	"voice-assistant-engine/internal/command"
	"voice-assistant-engine/internal/command/collaborator"
	"voice-assistant-engine/internal/confirm"
	"voice-assistant-engine/internal/fallback"
	"voice-assistant-engine/internal/memory"
	"voice-assistant-engine/internal/model"
	"voice-assistant-engine/internal/normalizer"
	"voice-assistant-engine/internal/slots"
	pkgLog "voice-assistant-engine/pkg/log"
)

// Collaborators groups the action executors the dispatcher routes to.
// A nil entry makes the corresponding intent unsupported.
type Collaborators struct {
	Launcher  collaborator.AppLauncher
	Browser   collaborator.Browser
	Messenger collaborator.Messenger
	Media     collaborator.Media
	Scraper   collaborator.Scraper
}

// Config holds the router tunables.
type Config struct {
	Gate             classifier.GateConfig
	SensitiveIntents []model.Intent
}

type implUseCase struct {
	l       pkgLog.Logger
	cfg     Config
	norm    *normalizer.Normalizer
	cls     *classifier.Classifier
	ext     *slots.Extractor
	fb      *fallback.Resolver
	mem     *memory.Log
	broker  *confirm.Broker
	collabs Collaborators

	sensitive map[model.Intent]struct{}
	seq       atomic.Uint64
}

var _ command.UseCase = (*implUseCase)(nil)

// New creates a new command UseCase instance.
func New(
	l pkgLog.Logger,
	cfg Config,
	norm *normalizer.Normalizer,
	cls *classifier.Classifier,
	ext *slots.Extractor,
	fb *fallback.Resolver,
	mem *memory.Log,
	broker *confirm.Broker,
	collabs Collaborators,
) *implUseCase {
	sensitive := make(map[model.Intent]struct{}, len(cfg.SensitiveIntents))
	for _, in := range cfg.SensitiveIntents {
		sensitive[in] = struct{}{}
	}
	return &implUseCase{
		l:         l,
		cfg:       cfg,
		norm:      norm,
		cls:       cls,
		ext:       ext,
		fb:        fb,
		mem:       mem,
		broker:    broker,
		collabs:   collabs,
		sensitive: sensitive,
	}
}
