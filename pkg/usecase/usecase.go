package usecase

import (
	"github.com/selec-labs/selecbot/pkg/domain/interfaces"
	"github.com/selec-labs/selecbot/pkg/domain/model/config"
)

type UseCases struct {
	repo   interfaces.Repository
	crm    interfaces.CRM
	botCfg *config.Bot

	Conversation *ConversationUseCase
}

type Option func(*UseCases)

// WithCRM wires the back-office collaborator that receives completed flows
func WithCRM(crm interfaces.CRM) Option {
	return func(uc *UseCases) {
		uc.crm = crm
	}
}

// WithBotConfig overrides the built-in bot behavior configuration
func WithBotConfig(cfg *config.Bot) Option {
	return func(uc *UseCases) {
		uc.botCfg = cfg
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:   repo,
		botCfg: config.Default(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Conversation = NewConversationUseCase(repo, uc.botCfg, uc.crm)

	return uc
}
