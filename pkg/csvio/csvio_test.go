package csvio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"

	"github.com/fadedpez/dugout/pkg/entities"
)

func shiftJIS(t *testing.T, s string) []byte {
	t.Helper()
	out, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return out
}

func TestBattingRoundTrip(t *testing.T) {
	recs := []*entities.BattingRecord{
		{
			Player: "山田", Opponent: "Tigers", Date: "2025-04-12", PA: "1", AB: "1",
			Result: entities.ResultHit, HitType: entities.HitTypeDouble, RBI: "2",
			BattedDirection: "左中間, ライン際", Run: "1", SB: "0", Position: "遊", Error: "0",
		},
		{Player: "佐藤", Date: "2025-04-12", PA: "1", AB: "0", Result: entities.ResultWalk},
		{Player: "鈴木", Result: entities.ResultUnknown},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBatting(&buf, recs))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\ufeffplayer,opponent,date,pa,ab,result,hitType,"))
	assert.Contains(t, out, "\r\n")
	assert.Contains(t, out, ",ヒット,二塁打,", "enumerations are written as labels")

	back, err := ReadBatting(&buf)
	require.NoError(t, err)
	assert.Equal(t, recs, back)
}

func TestPitchingRoundTrip(t *testing.T) {
	recs := []*entities.PitchingRecord{
		{Pitcher: "鈴木", Opponent: "Bears", Date: "2025-05-03", Innings: "6.1", Pitches: "98",
			Batters: "27", Hits: "5", HR: "1", SO: "7", BB: "2", HBP: "0", WP: "1", PB: "0",
			BK: "0", Runs: "3", ER: "3"},
		{Pitcher: "田中", Innings: "0.2"},
	}

	var buf bytes.Buffer
	require.NoError(t, WritePitching(&buf, recs))
	assert.True(t, strings.HasPrefix(buf.String(), "\ufeff"+strings.Join(PitchingHeader, ",")+"\r\n"))

	back, err := ReadPitching(&buf)
	require.NoError(t, err)
	assert.Equal(t, recs, back)
}

func TestReadBatting_ColumnsByName(t *testing.T) {
	in := "result,player,unused\n" +
		"\n" +
		"  四球 ,山田,x\n" +
		"STRIKEOUT,佐藤\n" +
		"バント,鈴木,y\n"

	recs, err := ReadBatting(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "山田", recs[0].Player)
	assert.Equal(t, entities.ResultWalk, recs[0].Result)
	assert.Equal(t, "", recs[0].PA, "missing columns read as empty")
	assert.Equal(t, entities.ResultStrikeout, recs[1].Result, "codes are accepted too")
	assert.Equal(t, entities.ResultUnknown, recs[2].Result)
	assert.Equal(t, "", recs[1].ID)
}

func TestRoundTripKeepsFieldText(t *testing.T) {
	recs := []*entities.BattingRecord{
		{Player: " 山田 ", Opponent: "Tigers\n\n2軍", Result: entities.ResultWalk,
			BattedDirection: "左中間\nライン際 "},
		{Player: "佐藤", Result: entities.ResultStrikeout},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBatting(&buf, recs))

	back, err := ReadBatting(&buf)
	require.NoError(t, err)
	require.Len(t, back, 2, "blank lines inside a quoted field do not split the record")
	assert.Equal(t, " 山田 ", back[0].Player)
	assert.Equal(t, "Tigers\n\n2軍", back[0].Opponent)
	assert.Equal(t, "左中間\nライン際 ", back[0].BattedDirection)
	assert.Equal(t, "佐藤", back[1].Player)
}

func TestReadBatting_SkipsBlankRecords(t *testing.T) {
	in := "player,result\r\n" +
		"   \r\n" +
		",\r\n" +
		"山田,四球\r\n"

	recs, err := ReadBatting(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "山田", recs[0].Player)
}

func TestReadBatting_ShiftJIS(t *testing.T) {
	in := shiftJIS(t, "player,result,hitType\r\n田中,ヒット,本塁打\r\n")

	recs, err := ReadBatting(bytes.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "田中", recs[0].Player)
	assert.Equal(t, entities.ResultHit, recs[0].Result)
	assert.Equal(t, entities.HitTypeHomeRun, recs[0].HitType)
}

func TestRead_TooShort(t *testing.T) {
	for _, in := range []string{"", "\ufeff", "player,result\r\n", "\n\n  \n"} {
		recs, err := ReadBatting(strings.NewReader(in))
		require.NoError(t, err)
		assert.Empty(t, recs, "%q", in)

		outings, err := ReadPitching(strings.NewReader(in))
		require.NoError(t, err)
		assert.Empty(t, outings, "%q", in)
	}
}

func TestRoster(t *testing.T) {
	names := []string{"山田", "佐藤", "髙橋"}

	var buf bytes.Buffer
	require.NoError(t, WriteRoster(&buf, names, UTF8BOM))
	assert.Equal(t, "\ufeff山田\r\n佐藤\r\n髙橋", buf.String())

	back, err := ReadRoster(&buf)
	require.NoError(t, err)
	assert.Equal(t, names, back)

	buf.Reset()
	require.NoError(t, WriteRoster(&buf, []string{"山田", "佐藤"}, ShiftJIS))
	assert.Equal(t, shiftJIS(t, "山田\r\n佐藤"), buf.Bytes())

	back, err = ReadRoster(&buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"山田", "佐藤"}, back)

	back, err = ReadRoster(strings.NewReader("\n  \n"))
	require.NoError(t, err)
	assert.Empty(t, back)
	assert.NotNil(t, back)

	assert.Equal(t, ShiftJIS, ParseEncoding("SJIS"))
	assert.Equal(t, UTF8BOM, ParseEncoding(""))
}
