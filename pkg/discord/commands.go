package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/fadedpez/dugout/pkg/entities"
	"github.com/fadedpez/dugout/pkg/services/statistics"
)

// Command names
const (
	CommandPA       = "pa"
	CommandOuting   = "outing"
	CommandBatting  = "batting"
	CommandPitching = "pitching"
	CommandPlayer   = "player"
	CommandChart    = "chart"
	CommandUndo     = "undo"
	CommandRoster   = "roster"
	CommandExport   = "export"
)

// Commands defines all slash commands for the bot
var Commands = []*discordgo.ApplicationCommand{
	{
		Name:        CommandPA,
		Description: "Record a plate appearance",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("player", "Batter name", true),
			resultOption(),
			hitTypeOption(),
			integerOption("rbi", "Runs batted in"),
			integerOption("run", "Runs scored"),
			integerOption("sb", "Stolen bases"),
			integerOption("error", "Errors committed"),
			stringOption("opponent", "Opposing team", false),
			stringOption("date", "Game date (YYYY-MM-DD), defaults to today", false),
			stringOption("position", "Fielding position", false),
			stringOption("direction", "Batted ball direction", false),
		},
	},
	{
		Name:        CommandOuting,
		Description: "Record a pitching outing",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("pitcher", "Pitcher name", true),
			stringOption("innings", "Innings pitched, e.g. 6.1 for six and a third", true),
			stringOption("opponent", "Opposing team", false),
			stringOption("date", "Game date (YYYY-MM-DD), defaults to today", false),
			integerOption("pitches", "Pitch count"),
			integerOption("batters", "Batters faced"),
			integerOption("hits", "Hits allowed"),
			integerOption("hr", "Home runs allowed"),
			integerOption("so", "Strikeouts"),
			integerOption("bb", "Walks"),
			integerOption("hbp", "Hit batters"),
			integerOption("wp", "Wild pitches"),
			integerOption("pb", "Passed balls"),
			integerOption("bk", "Balks"),
			integerOption("runs", "Runs allowed"),
			integerOption("er", "Earned runs"),
		},
	},
	{
		Name:        CommandBatting,
		Description: "Show the batting table",
		Options: append(filterOptions("player", "Only this batter"),
			sortOption(battingSortChoices()),
			boolOption("asc", "Sort ascending"),
		),
	},
	{
		Name:        CommandPitching,
		Description: "Show the pitching table",
		Options: append(filterOptions("pitcher", "Only this pitcher"),
			sortOption(pitchingSortChoices()),
			boolOption("asc", "Sort ascending"),
		),
	},
	{
		Name:        CommandPlayer,
		Description: "Show one batter's line and plate appearances",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("name", "Batter name", true),
			stringOption("month", "Month (YYYY-MM)", false),
			stringOption("opponent", "Opposing team", false),
		},
	},
	{
		Name:        CommandChart,
		Description: "Chart hits, runs batted in and walks per batter",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("month", "Month (YYYY-MM)", false),
			stringOption("from", "First month (YYYY-MM)", false),
			stringOption("to", "Last month (YYYY-MM)", false),
		},
	},
	{
		Name:        CommandUndo,
		Description: "Undo the last change to the batting log",
	},
	{
		Name:        CommandRoster,
		Description: "Manage the batter and pitcher rosters",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "add",
				Description: "Add a name to a roster",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options:     []*discordgo.ApplicationCommandOption{rosterKindOption(), stringOption("name", "Name", true)},
			},
			{
				Name:        "remove",
				Description: "Remove a name from a roster",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options:     []*discordgo.ApplicationCommandOption{rosterKindOption(), stringOption("name", "Name", true)},
			},
			{
				Name:        "list",
				Description: "List a roster",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options:     []*discordgo.ApplicationCommandOption{rosterKindOption()},
			},
		},
	},
	{
		Name:        CommandExport,
		Description: "Download a record log as CSV",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "kind",
				Description: "Which log",
				Type:        discordgo.ApplicationCommandOptionString,
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "batting", Value: "batting"},
					{Name: "pitching", Value: "pitching"},
				},
			},
		},
	},
}

func stringOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Name:        name,
		Description: description,
		Type:        discordgo.ApplicationCommandOptionString,
		Required:    required,
	}
}

func integerOption(name, description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Name:        name,
		Description: description,
		Type:        discordgo.ApplicationCommandOptionInteger,
	}
}

func boolOption(name, description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Name:        name,
		Description: description,
		Type:        discordgo.ApplicationCommandOptionBoolean,
	}
}

func filterOptions(nameOption, nameDescription string) []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		stringOption("month", "Month (YYYY-MM)", false),
		stringOption("from", "First month (YYYY-MM)", false),
		stringOption("to", "Last month (YYYY-MM)", false),
		stringOption(nameOption, nameDescription, false),
		stringOption("opponent", "Opposing team", false),
		stringOption("date", "Game date (YYYY-MM-DD)", false),
	}
}

func resultOption() *discordgo.ApplicationCommandOption {
	opt := stringOption("result", "Outcome of the plate appearance", true)
	for _, r := range entities.Results {
		opt.Choices = append(opt.Choices, &discordgo.ApplicationCommandOptionChoice{Name: r.Label(), Value: string(r)})
	}
	return opt
}

func hitTypeOption() *discordgo.ApplicationCommandOption {
	opt := stringOption("hit_type", "Kind of hit", false)
	for _, h := range entities.HitTypes {
		opt.Choices = append(opt.Choices, &discordgo.ApplicationCommandOptionChoice{Name: h.Label(), Value: string(h)})
	}
	return opt
}

func rosterKindOption() *discordgo.ApplicationCommandOption {
	opt := stringOption("kind", "Which roster", true)
	opt.Choices = []*discordgo.ApplicationCommandOptionChoice{
		{Name: "batters", Value: string(entities.RosterBatters)},
		{Name: "pitchers", Value: string(entities.RosterPitchers)},
	}
	return opt
}

// sortOption carries at most 25 choices, the Discord limit
func sortOption(choices []*discordgo.ApplicationCommandOptionChoice) *discordgo.ApplicationCommandOption {
	opt := stringOption("sort", "Column to sort by", false)
	opt.Choices = choices
	return opt
}

func battingSortChoices() []*discordgo.ApplicationCommandOptionChoice {
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, k := range statistics.BattingSortKeys {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: string(k), Value: string(k)})
	}
	return choices
}

func pitchingSortChoices() []*discordgo.ApplicationCommandOptionChoice {
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, k := range statistics.PitchingSortKeys {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: string(k), Value: string(k)})
	}
	return choices
}
