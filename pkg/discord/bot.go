package discord

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/fadedpez/dugout/internal/discord"
	"github.com/fadedpez/dugout/internal/logging"
	"github.com/fadedpez/dugout/pkg/entities"
	"github.com/fadedpez/dugout/pkg/services/statistics"
	"github.com/fadedpez/dugout/pkg/storage"
)

// RecordsService is the part of the records service the bot writes through
type RecordsService interface {
	AddPlateAppearance(ctx context.Context, rec *entities.BattingRecord) (*entities.BattingRecord, error)
	AddOuting(ctx context.Context, rec *entities.PitchingRecord) (*entities.PitchingRecord, error)
	Undo(ctx context.Context) (*storage.Snapshot, error)
	Batting(ctx context.Context) ([]*entities.BattingRecord, error)
	Pitching(ctx context.Context) ([]*entities.PitchingRecord, error)
	Roster(ctx context.Context, kind entities.RosterKind) ([]string, error)
	AddToRoster(ctx context.Context, kind entities.RosterKind, name string) ([]string, error)
	RemoveFromRoster(ctx context.Context, kind entities.RosterKind, name string) ([]string, error)
}

// StatisticsService is the part of the statistics service the bot reads from
type StatisticsService interface {
	BattingTable(ctx context.Context, f statistics.Filter, state statistics.SortState[statistics.BattingSortKey]) (*statistics.BattingTable, error)
	PitchingTable(ctx context.Context, f statistics.Filter, state statistics.SortState[statistics.PitchingSortKey]) (*statistics.PitchingTable, error)
	Chart(ctx context.Context, f statistics.Filter) (*statistics.Chart, error)
	PlayerDetail(ctx context.Context, player string, f statistics.Filter) (*statistics.PlayerDetail, error)
}

// Options configures the bot
type Options struct {
	AppID   string
	GuildID string
	// CleanupCommands removes the registered commands on Stop, for development
	CleanupCommands bool
	// RequestTimeout bounds the service calls made for one interaction
	RequestTimeout time.Duration
}

// Bot represents the Discord bot instance
type Bot struct {
	session    discord.SessionHandler
	options    Options
	records    RecordsService
	statistics StatisticsService
	log        *logging.Logger
	now        func() time.Time

	mu         sync.Mutex
	registered []*discordgo.ApplicationCommand
	removeFn   func()
}

// NewBot creates a new instance of the bot
func NewBot(session discord.SessionHandler, options Options, records RecordsService, stats StatisticsService) *Bot {
	if options.RequestTimeout <= 0 {
		options.RequestTimeout = 10 * time.Second
	}
	return &Bot{
		session:    session,
		options:    options,
		records:    records,
		statistics: stats,
		log:        logging.Default,
		now:        time.Now,
	}
}

// SetLogger replaces the default logger
func (b *Bot) SetLogger(l *logging.Logger) {
	b.log = l
}

// Start registers the interaction handler, opens the websocket connection
// and registers the slash commands. Registration overwrites the app's
// command set, so commands dropped since the last run disappear.
func (b *Bot) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.removeFn = b.session.AddHandler(func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		b.handleInteraction(i)
	})

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	created, err := b.session.ApplicationCommandBulkOverwrite(b.options.AppID, b.options.GuildID, Commands)
	if err != nil {
		return fmt.Errorf("error registering commands: %w", err)
	}
	b.registered = created
	for _, cmd := range created {
		b.log.Debug("Registered command: %s", cmd.Name)
	}

	b.log.Info("Bot started with %d commands", len(b.registered))
	return nil
}

// Stop gracefully shuts down the bot and closes the Discord connection
func (b *Bot) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.options.CleanupCommands && len(b.registered) > 0 {
		none := []*discordgo.ApplicationCommand{}
		if _, err := b.session.ApplicationCommandBulkOverwrite(b.options.AppID, b.options.GuildID, none); err != nil {
			b.log.Warn("Error removing %d commands: %v", len(b.registered), err)
		}
	}
	b.registered = nil

	if b.removeFn != nil {
		b.removeFn()
		b.removeFn = nil
	}

	if err := b.session.Close(); err != nil {
		return fmt.Errorf("error closing connection: %w", err)
	}
	return nil
}
