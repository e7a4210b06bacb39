package discord

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/fadedpez/dugout/internal/discord"
	"github.com/fadedpez/dugout/internal/types"
	"github.com/fadedpez/dugout/pkg/csvio"
	"github.com/fadedpez/dugout/pkg/entities"
	"github.com/fadedpez/dugout/pkg/report"
	"github.com/fadedpez/dugout/pkg/services/statistics"
)

// maxMessageLength is the Discord message content limit
const maxMessageLength = 2000

type commandHandler func(b *Bot, ctx context.Context, o options) (*discord.Response, error)

var handlers = map[string]commandHandler{
	CommandPA:       (*Bot).handlePA,
	CommandOuting:   (*Bot).handleOuting,
	CommandBatting:  (*Bot).handleBatting,
	CommandPitching: (*Bot).handlePitching,
	CommandPlayer:   (*Bot).handlePlayer,
	CommandChart:    (*Bot).handleChart,
	CommandUndo:     (*Bot).handleUndo,
	CommandRoster:   (*Bot).handleRoster,
	CommandExport:   (*Bot).handleExport,
}

func (b *Bot) handleInteraction(i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	b.handleSlashCommand(i)
}

// handleSlashCommand routes a slash command to its handler and answers it
func (b *Bot) handleSlashCommand(i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	handler, ok := handlers[data.Name]
	if !ok {
		b.log.Warn("Unknown command: %s", data.Name)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.options.RequestTimeout)
	defer cancel()

	resp, err := handler(b, ctx, newOptions(data.Options))
	if err != nil {
		b.log.LogError(err)
		resp = discord.NewErrorResponse(err)
	}
	if err := discord.SendResponse(b.session, i, resp); err != nil {
		b.log.Error("Error responding to /%s: %v", data.Name, err)
	}
}

func (b *Bot) handlePA(ctx context.Context, o options) (*discord.Response, error) {
	rec, err := b.records.AddPlateAppearance(ctx, &entities.BattingRecord{
		Player:          o.text("player"),
		Result:          entities.ParseResult(o.text("result")),
		HitType:         entities.ParseHitType(o.text("hit_type")),
		RBI:             o.count("rbi"),
		Run:             o.count("run"),
		SB:              o.count("sb"),
		Error:           o.count("error"),
		Opponent:        o.text("opponent"),
		Date:            b.dateOrToday(o.text("date")),
		Position:        o.text("position"),
		BattedDirection: o.text("direction"),
	})
	if err != nil {
		return nil, err
	}

	content := fmt.Sprintf("⚾ %s: %s", rec.Player, report.ResultText(rec))
	if rec.RBI != "" && rec.RBI != "0" {
		content += fmt.Sprintf(" %s打点", rec.RBI)
	}
	if rec.Opponent != "" {
		content += " vs " + rec.Opponent
	}
	return discord.NewResponse(content + " (" + rec.Date + ")"), nil
}

func (b *Bot) handleOuting(ctx context.Context, o options) (*discord.Response, error) {
	rec, err := b.records.AddOuting(ctx, &entities.PitchingRecord{
		Pitcher:  o.text("pitcher"),
		Innings:  o.text("innings"),
		Opponent: o.text("opponent"),
		Date:     b.dateOrToday(o.text("date")),
		Pitches:  o.count("pitches"),
		Batters:  o.count("batters"),
		Hits:     o.count("hits"),
		HR:       o.count("hr"),
		SO:       o.count("so"),
		BB:       o.count("bb"),
		HBP:      o.count("hbp"),
		WP:       o.count("wp"),
		PB:       o.count("pb"),
		BK:       o.count("bk"),
		Runs:     o.count("runs"),
		ER:       o.count("er"),
	})
	if err != nil {
		return nil, err
	}

	content := fmt.Sprintf("🧢 %s: %s回", rec.Pitcher, rec.Innings)
	if rec.ER != "" {
		content += fmt.Sprintf(" 自責点%s", rec.ER)
	}
	if rec.Opponent != "" {
		content += " vs " + rec.Opponent
	}
	return discord.NewResponse(content + " (" + rec.Date + ")"), nil
}

func (b *Bot) handleBatting(ctx context.Context, o options) (*discord.Response, error) {
	state := statistics.DefaultBattingSort()
	if raw := o.text("sort"); raw != "" {
		key, ok := statistics.ParseBattingSortKey(raw)
		if !ok {
			return nil, types.NewAppError(types.ErrInvalidArgument, fmt.Sprintf("unknown sort column %q", raw))
		}
		state = statistics.SortState[statistics.BattingSortKey]{Key: key}
	}
	state.Asc = o.flag("asc")

	table, err := b.statistics.BattingTable(ctx, o.filter("player"), state)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := report.BattingTable(&buf, table); err != nil {
		return nil, types.WrapError(types.ErrInternalError, "failed to render batting table", err)
	}
	return textResponse("batting", buf.String()), nil
}

func (b *Bot) handlePitching(ctx context.Context, o options) (*discord.Response, error) {
	state := statistics.DefaultPitchingSort()
	if raw := o.text("sort"); raw != "" {
		key, ok := statistics.ParsePitchingSortKey(raw)
		if !ok {
			return nil, types.NewAppError(types.ErrInvalidArgument, fmt.Sprintf("unknown sort column %q", raw))
		}
		state = statistics.SortState[statistics.PitchingSortKey]{Key: key}
	}
	state.Asc = o.flag("asc")

	table, err := b.statistics.PitchingTable(ctx, o.filter("pitcher"), state)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := report.PitchingTable(&buf, table); err != nil {
		return nil, types.WrapError(types.ErrInternalError, "failed to render pitching table", err)
	}
	return textResponse("pitching", buf.String()), nil
}

func (b *Bot) handlePlayer(ctx context.Context, o options) (*discord.Response, error) {
	detail, err := b.statistics.PlayerDetail(ctx, o.text("name"), statistics.Filter{
		Month:    o.text("month"),
		Opponent: o.text("opponent"),
	})
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := report.PlayerDetail(&buf, detail); err != nil {
		return nil, types.WrapError(types.ErrInternalError, "failed to render player", err)
	}
	return textResponse("player", buf.String()), nil
}

func (b *Bot) handleChart(ctx context.Context, o options) (*discord.Response, error) {
	chart, err := b.statistics.Chart(ctx, o.filter(""))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := report.Chart(&buf, chart); err != nil {
		return nil, types.WrapError(types.ErrInternalError, "failed to render chart", err)
	}
	return textResponse("chart", buf.String()), nil
}

func (b *Bot) handleUndo(ctx context.Context, _ options) (*discord.Response, error) {
	snap, err := b.records.Undo(ctx)
	if err != nil {
		return nil, err
	}
	return discord.NewResponse("↩️ " + report.Undone(snap, b.now())), nil
}

func (b *Bot) handleRoster(ctx context.Context, o options) (*discord.Response, error) {
	sub, subOpts := o.subcommand()
	kind := entities.RosterKind(subOpts.text("kind"))

	var (
		names []string
		err   error
	)
	switch sub {
	case "add":
		names, err = b.records.AddToRoster(ctx, kind, subOpts.text("name"))
	case "remove":
		names, err = b.records.RemoveFromRoster(ctx, kind, subOpts.text("name"))
	case "list":
		names, err = b.records.Roster(ctx, kind)
	default:
		return nil, types.NewAppError(types.ErrInvalidArgument, fmt.Sprintf("unknown roster action %q", sub))
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := report.Roster(&buf, string(kind), names); err != nil {
		return nil, types.WrapError(types.ErrInternalError, "failed to render roster", err)
	}
	return textResponse("roster", buf.String()), nil
}

func (b *Bot) handleExport(ctx context.Context, o options) (*discord.Response, error) {
	kind := o.text("kind")
	var buf bytes.Buffer
	switch kind {
	case "batting":
		recs, err := b.records.Batting(ctx)
		if err != nil {
			return nil, err
		}
		if err := csvio.WriteBatting(&buf, recs); err != nil {
			return nil, types.WrapError(types.ErrInternalError, "failed to write batting CSV", err)
		}
	case "pitching":
		recs, err := b.records.Pitching(ctx)
		if err != nil {
			return nil, err
		}
		if err := csvio.WritePitching(&buf, recs); err != nil {
			return nil, types.WrapError(types.ErrInternalError, "failed to write pitching CSV", err)
		}
	default:
		return nil, types.NewAppError(types.ErrInvalidArgument, fmt.Sprintf("unknown log %q", kind))
	}

	name := fmt.Sprintf("%s-%s.csv", kind, b.now().Format("20060102"))
	return discord.NewFileResponse("📄 "+name, &discordgo.File{
		Name:        name,
		ContentType: "text/csv",
		Reader:      &buf,
	}), nil
}

func (b *Bot) dateOrToday(date string) string {
	if date != "" {
		return date
	}
	return b.now().Format("2006-01-02")
}

// textResponse puts text in a code block, or attaches it as a file when
// the block would not fit in one message
func textResponse(name, text string) *discord.Response {
	block := discord.CodeBlock(text)
	if len(block) <= maxMessageLength {
		return discord.NewResponse(block)
	}
	return discord.NewFileResponse("", &discordgo.File{
		Name:        name + ".txt",
		ContentType: "text/plain; charset=utf-8",
		Reader:      strings.NewReader(text),
	})
}

// options indexes the options of a command by name
type options map[string]*discordgo.ApplicationCommandInteractionDataOption

func newOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) options {
	o := make(options, len(opts))
	for _, opt := range opts {
		o[opt.Name] = opt
	}
	return o
}

func (o options) text(name string) string {
	opt, ok := o[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionString {
		return ""
	}
	return strings.TrimSpace(opt.StringValue())
}

// count returns an integer option as a stored count, or "" when absent
func (o options) count(name string) string {
	opt, ok := o[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionInteger {
		return ""
	}
	return strconv.FormatInt(opt.IntValue(), 10)
}

func (o options) flag(name string) bool {
	opt, ok := o[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionBoolean {
		return false
	}
	return opt.BoolValue()
}

func (o options) subcommand() (string, options) {
	for name, opt := range o {
		if opt.Type == discordgo.ApplicationCommandOptionSubCommand {
			return name, newOptions(opt.Options)
		}
	}
	return "", options{}
}

// filter reads the shared table filters. nameOption names the option
// that narrows the table to one player, if the command has one.
func (o options) filter(nameOption string) statistics.Filter {
	f := statistics.Filter{
		Month:     o.text("month"),
		FromMonth: o.text("from"),
		ToMonth:   o.text("to"),
		Opponent:  o.text("opponent"),
		Date:      o.text("date"),
	}
	if nameOption != "" {
		f.Player = o.text(nameOption)
	}
	return f
}
