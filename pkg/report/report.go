package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/fadedpez/dugout/pkg/entities"
	"github.com/fadedpez/dugout/pkg/services/statistics"
	"github.com/fadedpez/dugout/pkg/storage"
)

// TeamLabel heads the team-total row
const TeamLabel = "チーム"

// BattingTable renders the batting leaderboard followed by the team row
func BattingTable(w io.Writer, t *statistics.BattingTable) error {
	tbl := newTable(
		left("選手"), right("打席"), right("打数"), right("安打"), right("二塁打"),
		right("三塁打"), right("本塁打"), right("四球"), right("死球"), right("三振"),
		right("打点"), right("得点"), right("盗塁"), right("失策"), right("打率"), right("出塁率"),
	)
	for _, r := range t.Rows {
		tbl.add(battingCells(r.Player, r)...)
	}
	tbl.rule()
	team := t.Team.BattingAggregate
	tbl.add(battingCells(fmt.Sprintf("%s (%d試合)", TeamLabel, t.Team.Games), &team)...)
	return tbl.render(w)
}

func battingCells(name string, a *entities.BattingAggregate) []string {
	return []string{
		name, itoa(a.PA), itoa(a.AB), itoa(a.H), itoa(a.Double), itoa(a.Triple),
		itoa(a.HR), itoa(a.BB), itoa(a.HBP), itoa(a.SO), itoa(a.RBI), itoa(a.Run),
		itoa(a.SB), itoa(a.Error), a.AVG, a.OBP,
	}
}

// PitchingTable renders the pitching leaderboard followed by the team row
func PitchingTable(w io.Writer, t *statistics.PitchingTable) error {
	tbl := newTable(
		left("投手"), right("投球回"), right("球数"), right("打者"), right("被安打"),
		right("被本塁打"), right("奪三振"), right("与四球"), right("与死球"), right("暴投"),
		right("捕逸"), right("ボーク"), right("失点"), right("自責点"), right("防御率"),
	)
	for _, r := range t.Rows {
		tbl.add(pitchingCells(r.Pitcher, r)...)
	}
	tbl.rule()
	team := t.Team.PitchingAggregate
	tbl.add(pitchingCells(fmt.Sprintf("%s (%d試合)", TeamLabel, t.Team.Games), &team)...)
	return tbl.render(w)
}

func pitchingCells(name string, a *entities.PitchingAggregate) []string {
	return []string{
		name, a.InningsPitched, itoa(a.Pitches), itoa(a.Batters), itoa(a.Hits),
		itoa(a.HR), itoa(a.SO), itoa(a.BB), itoa(a.HBP), itoa(a.WP), itoa(a.PB),
		itoa(a.BK), itoa(a.Runs), itoa(a.ER), a.ERA,
	}
}

// PlayerDetail renders a player's line and each plate appearance behind it
func PlayerDetail(w io.Writer, d *statistics.PlayerDetail) error {
	a := d.Aggregate
	summary := fmt.Sprintf("%s  打率 %s  出塁率 %s  %d打席 %d打数 %d安打 %d本塁打 %d打点\n\n",
		d.Player, a.AVG, a.OBP, a.PA, a.AB, a.H, a.HR, a.RBI)
	if _, err := io.WriteString(w, summary); err != nil {
		return err
	}
	if len(d.Records) == 0 {
		_, err := io.WriteString(w, "記録なし\n")
		return err
	}

	tbl := newTable(left("日付"), left("相手"), left("結果"), left("打球"), right("打点"), right("得点"), right("盗塁"))
	for _, r := range d.Records {
		tbl.add(r.Date, r.Opponent, ResultText(r), r.BattedDirection, r.RBI, r.Run, r.SB)
	}
	return tbl.render(w)
}

// ResultText labels a plate appearance outcome, such as "ヒット(二塁打)"
func ResultText(r *entities.BattingRecord) string {
	result := r.Result.Label()
	if h := r.HitType.Label(); h != "" {
		result += "(" + h + ")"
	}
	return result
}

// Chart renders each chart series as a horizontal bar per player
func Chart(w io.Writer, c *statistics.Chart) error {
	nameWidth := 0
	for _, l := range c.Labels {
		nameWidth = max(nameWidth, displayWidth(l))
	}

	var b strings.Builder
	for i, s := range c.Series {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("[" + s.Label + "]\n")
		for j, label := range c.Labels {
			n := 0
			if j < len(s.Data) {
				n = s.Data[j]
			}
			pad := strings.Repeat(" ", nameWidth-displayWidth(label))
			fmt.Fprintf(&b, "%s%s %s %d\n", label, pad, strings.Repeat("█", n), n)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Undone describes a popped snapshot, such as "Undid add from 3 minutes
// ago. 12 plate appearances restored."
func Undone(snap *storage.Snapshot, now time.Time) string {
	return fmt.Sprintf("Undid %s from %s. %d plate appearances restored.",
		snap.Reason, humanize.RelTime(snap.CreatedAt, now, "ago", "from now"), len(snap.Batting))
}

// Roster lists roster names one per line, numbered
func Roster(w io.Writer, title string, names []string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d)\n", title, len(names))
	for i, n := range names {
		fmt.Fprintf(&b, "%2d. %s\n", i+1, n)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
