package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fadedpez/dugout/internal/types"
	"github.com/fadedpez/dugout/pkg/csvio"
	"github.com/fadedpez/dugout/pkg/entities"
	"github.com/fadedpez/dugout/pkg/services/statistics"
)

// Log kinds accepted by the CSV routes
const (
	kindBatting  = "batting"
	kindPitching = "pitching"
)

// HealthCheck returns the health status of the API
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": s.now().UTC(),
		"service":   "dugout",
	})
}

// GetBatting returns the batting table
// Query params: month, from, to, player, opponent, date, sort, asc
func (s *Server) GetBatting(w http.ResponseWriter, r *http.Request) {
	s.cached(w, r, func() (interface{}, error) {
		state := statistics.DefaultBattingSort()
		if raw := r.URL.Query().Get("sort"); raw != "" {
			key, ok := statistics.ParseBattingSortKey(raw)
			if !ok {
				return nil, types.NewAppError(types.ErrInvalidArgument, fmt.Sprintf("unknown sort column %q", raw))
			}
			state.Key = key
		}
		asc, err := parseBoolParam(r, "asc")
		if err != nil {
			return nil, err
		}
		state.Asc = asc
		return s.statistics.BattingTable(r.Context(), parseFilter(r), state)
	})
}

// GetPitching returns the pitching table
// Query params: month, from, to, player, opponent, date, sort, asc
func (s *Server) GetPitching(w http.ResponseWriter, r *http.Request) {
	s.cached(w, r, func() (interface{}, error) {
		state := statistics.DefaultPitchingSort()
		if raw := r.URL.Query().Get("sort"); raw != "" {
			key, ok := statistics.ParsePitchingSortKey(raw)
			if !ok {
				return nil, types.NewAppError(types.ErrInvalidArgument, fmt.Sprintf("unknown sort column %q", raw))
			}
			state.Key = key
		}
		asc, err := parseBoolParam(r, "asc")
		if err != nil {
			return nil, err
		}
		state.Asc = asc
		return s.statistics.PitchingTable(r.Context(), parseFilter(r), state)
	})
}

// GetBattingChart returns the per-player chart series
func (s *Server) GetBattingChart(w http.ResponseWriter, r *http.Request) {
	s.cached(w, r, func() (interface{}, error) {
		return s.statistics.Chart(r.Context(), parseFilter(r))
	})
}

// GetBattingMonths lists the months with batting records, newest first
func (s *Server) GetBattingMonths(w http.ResponseWriter, r *http.Request) {
	s.cached(w, r, func() (interface{}, error) {
		months, err := s.statistics.Months(r.Context())
		if err != nil {
			return nil, err
		}
		return map[string][]string{"months": months.Batting}, nil
	})
}

// GetPitchingMonths lists the months with pitching records, oldest first
func (s *Server) GetPitchingMonths(w http.ResponseWriter, r *http.Request) {
	s.cached(w, r, func() (interface{}, error) {
		months, err := s.statistics.Months(r.Context())
		if err != nil {
			return nil, err
		}
		return map[string][]string{"months": months.Pitching}, nil
	})
}

// GetPlayer returns one batter's line and plate appearances
func (s *Server) GetPlayer(w http.ResponseWriter, r *http.Request) {
	s.cached(w, r, func() (interface{}, error) {
		return s.statistics.PlayerDetail(r.Context(), chi.URLParam(r, "name"), parseFilter(r))
	})
}

// GetBattingRecords returns the raw batting log in entry order
func (s *Server) GetBattingRecords(w http.ResponseWriter, r *http.Request) {
	s.cached(w, r, func() (interface{}, error) {
		recs, err := s.records.Batting(r.Context())
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"records": recs, "count": len(recs)}, nil
	})
}

// GetPitchingRecords returns the raw pitching log in entry order
func (s *Server) GetPitchingRecords(w http.ResponseWriter, r *http.Request) {
	s.cached(w, r, func() (interface{}, error) {
		recs, err := s.records.Pitching(r.Context())
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"records": recs, "count": len(recs)}, nil
	})
}

// CreatePlateAppearance records a plate appearance
func (s *Server) CreatePlateAppearance(w http.ResponseWriter, r *http.Request) {
	var rec entities.BattingRecord
	if err := decodeJSON(r, &rec); err != nil {
		s.respondError(w, err)
		return
	}
	normalizeEnums(&rec)

	stored, err := s.records.AddPlateAppearance(r.Context(), &rec)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, stored)
}

// UpdatePlateAppearance replaces a plate appearance
func (s *Server) UpdatePlateAppearance(w http.ResponseWriter, r *http.Request) {
	var rec entities.BattingRecord
	if err := decodeJSON(r, &rec); err != nil {
		s.respondError(w, err)
		return
	}
	normalizeEnums(&rec)
	rec.ID = chi.URLParam(r, "id")

	stored, err := s.records.EditPlateAppearance(r.Context(), &rec)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, stored)
}

// DeletePlateAppearance removes a plate appearance
func (s *Server) DeletePlateAppearance(w http.ResponseWriter, r *http.Request) {
	if err := s.records.DeletePlateAppearance(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"deleted": chi.URLParam(r, "id")})
}

// ClearBatting empties the batting log. The old log can be restored with Undo.
func (s *Server) ClearBatting(w http.ResponseWriter, r *http.Request) {
	if err := s.records.ClearBatting(r.Context()); err != nil {
		s.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Undo restores the batting log from before its last change
func (s *Server) Undo(w http.ResponseWriter, r *http.Request) {
	snap, err := s.records.Undo(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"reason":    snap.Reason,
		"createdAt": snap.CreatedAt,
		"restored":  len(snap.Batting),
	})
}

// CreateOuting records a pitching outing
func (s *Server) CreateOuting(w http.ResponseWriter, r *http.Request) {
	var rec entities.PitchingRecord
	if err := decodeJSON(r, &rec); err != nil {
		s.respondError(w, err)
		return
	}

	stored, err := s.records.AddOuting(r.Context(), &rec)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, stored)
}

// DeleteOuting removes a pitching outing
func (s *Server) DeleteOuting(w http.ResponseWriter, r *http.Request) {
	if err := s.records.DeleteOuting(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"deleted": chi.URLParam(r, "id")})
}

// Export downloads a record log as CSV
func (s *Server) Export(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	var buf bytes.Buffer
	switch kind {
	case kindBatting:
		recs, err := s.records.Batting(r.Context())
		if err != nil {
			s.respondError(w, err)
			return
		}
		if err := csvio.WriteBatting(&buf, recs); err != nil {
			s.respondError(w, types.WrapError(types.ErrInternalError, "failed to write CSV", err))
			return
		}
	case kindPitching:
		recs, err := s.records.Pitching(r.Context())
		if err != nil {
			s.respondError(w, err)
			return
		}
		if err := csvio.WritePitching(&buf, recs); err != nil {
			s.respondError(w, types.WrapError(types.ErrInternalError, "failed to write CSV", err))
			return
		}
	default:
		s.respondError(w, unknownLog(kind))
		return
	}

	s.sendFile(w, fmt.Sprintf("%s-%s.csv", kind, s.now().Format("20060102")), "text/csv; charset=utf-8", buf.Bytes())
}

// Import replaces a record log with an uploaded CSV
func (s *Server) Import(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	body := http.MaxBytesReader(w, r.Body, s.options.MaxUploadBytes)

	var (
		n   int
		err error
	)
	switch kind {
	case kindBatting:
		var recs []*entities.BattingRecord
		if recs, err = csvio.ReadBatting(body); err != nil {
			err = types.WrapError(types.ErrImportFailed, "failed to read CSV", err)
		} else if len(recs) == 0 {
			err = types.NewAppError(types.ErrImportFailed, "no records found")
		} else {
			n, err = s.records.ImportBatting(r.Context(), recs)
		}
	case kindPitching:
		var recs []*entities.PitchingRecord
		if recs, err = csvio.ReadPitching(body); err != nil {
			err = types.WrapError(types.ErrImportFailed, "failed to read CSV", err)
		} else if len(recs) == 0 {
			err = types.NewAppError(types.ErrImportFailed, "no records found")
		} else {
			n, err = s.records.ImportPitching(r.Context(), recs)
		}
	default:
		err = unknownLog(kind)
	}
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]int{"imported": n})
}

// GetRoster lists a roster
func (s *Server) GetRoster(w http.ResponseWriter, r *http.Request) {
	s.cached(w, r, func() (interface{}, error) {
		names, err := s.records.Roster(r.Context(), rosterKind(r))
		if err != nil {
			return nil, err
		}
		return map[string][]string{"names": names}, nil
	})
}

type rosterRequest struct {
	Name  string   `json:"name"`
	Names []string `json:"names"`
}

// AddToRoster appends a name to a roster
func (s *Server) AddToRoster(w http.ResponseWriter, r *http.Request) {
	var req rosterRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	names, err := s.records.AddToRoster(r.Context(), rosterKind(r), req.Name)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string][]string{"names": names})
}

// ReplaceRoster saves a whole roster
func (s *Server) ReplaceRoster(w http.ResponseWriter, r *http.Request) {
	var req rosterRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	names, err := s.records.ReplaceRoster(r.Context(), rosterKind(r), req.Names)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string][]string{"names": names})
}

// RemoveFromRoster drops a name from a roster
func (s *Server) RemoveFromRoster(w http.ResponseWriter, r *http.Request) {
	names, err := s.records.RemoveFromRoster(r.Context(), rosterKind(r), chi.URLParam(r, "name"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string][]string{"names": names})
}

// ExportRoster downloads a roster, one name per line
// Query params: encoding (utf8 or sjis)
func (s *Server) ExportRoster(w http.ResponseWriter, r *http.Request) {
	kind := rosterKind(r)
	names, err := s.records.Roster(r.Context(), kind)
	if err != nil {
		s.respondError(w, err)
		return
	}

	enc := csvio.ParseEncoding(r.URL.Query().Get("encoding"))
	contentType := "text/csv; charset=utf-8"
	if enc == csvio.ShiftJIS {
		contentType = "text/csv; charset=shift_jis"
	}

	var buf bytes.Buffer
	if err := csvio.WriteRoster(&buf, names, enc); err != nil {
		s.respondError(w, types.WrapError(types.ErrInternalError, "failed to write roster", err))
		return
	}
	s.sendFile(w, string(kind)+".csv", contentType, buf.Bytes())
}

// ImportRoster replaces a roster with an uploaded list
func (s *Server) ImportRoster(w http.ResponseWriter, r *http.Request) {
	read, err := csvio.ReadRoster(http.MaxBytesReader(w, r.Body, s.options.MaxUploadBytes))
	if err != nil {
		s.respondError(w, types.WrapError(types.ErrImportFailed, "failed to read roster", err))
		return
	}
	names, err := s.records.ReplaceRoster(r.Context(), rosterKind(r), read)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string][]string{"names": names})
}

func (s *Server) sendFile(w http.ResponseWriter, name, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.log.Error("error writing %s: %v", name, err)
	}
}

// parseFilter reads the table filter from the query string
func parseFilter(r *http.Request) statistics.Filter {
	q := r.URL.Query()
	return statistics.Filter{
		Month:     strings.TrimSpace(q.Get("month")),
		FromMonth: strings.TrimSpace(q.Get("from")),
		ToMonth:   strings.TrimSpace(q.Get("to")),
		Player:    strings.TrimSpace(q.Get("player")),
		Opponent:  strings.TrimSpace(q.Get("opponent")),
		Date:      strings.TrimSpace(q.Get("date")),
	}
}

func parseBoolParam(r *http.Request, param string) (bool, error) {
	raw := r.URL.Query().Get(param)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, types.NewAppError(types.ErrInvalidArgument, fmt.Sprintf("invalid %s %q", param, raw))
	}
	return v, nil
}

func rosterKind(r *http.Request) entities.RosterKind {
	return entities.RosterKind(chi.URLParam(r, "kind"))
}

// normalizeEnums accepts labels as well as codes for result and hit type
func normalizeEnums(rec *entities.BattingRecord) {
	rec.Result = entities.ParseResult(string(rec.Result))
	rec.HitType = entities.ParseHitType(string(rec.HitType))
}

func unknownLog(kind string) error {
	return types.NewAppError(types.ErrInvalidArgument, fmt.Sprintf("unknown log %q", kind))
}
