package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/stellarweave/galaxysim/pkg/galaxy"
	"github.com/stellarweave/galaxysim/pkg/validation"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   s.version,
		Mode:      string(s.driver.Mode()),
		Settled:   s.driver.Settled(),
		Nodes:     s.store.NodeCount(),
		Uptime:    time.Since(s.startTime).String(),
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Get(func() {
			snap := s.store.Snapshot()
			snap.Mode = s.driver.Mode()
			snap.Settled = s.driver.Settled()
			snap.Time = time.Now()
			s.respondJSON(w, http.StatusOK, snap)
		}).
		NotAllowed()
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Get(func() {
			s.respondJSON(w, http.StatusOK, ConfigResponse{
				Physics:  s.driver.Config(),
				Mode:     string(s.driver.Mode()),
				Strategy: string(s.strategy),
			})
		}).
		Put(func() {
			var req ConfigRequest
			rd := s.NewRequestDecoder(w, r).
				DecodeJSON(&req).
				ValidateStruct(&req.Physics).
				Validate(func() error {
					switch galaxy.Mode(req.Mode) {
					case "", galaxy.ModeContinuous, galaxy.ModeStatic:
						return nil
					}
					return fmt.Errorf("unknown mode %q", req.Mode)
				})
			if rd.RespondError() {
				return
			}

			s.driver.SetConfig(req.Physics)
			if req.Mode != "" {
				s.driver.SetMode(galaxy.Mode(req.Mode))
			}
			s.respondJSON(w, http.StatusOK, StatusResponse{Status: "accepted"})
		}).
		NotAllowed()
}

func (s *Server) handlePreferences(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Put(func() {
			var req PreferencesRequest
			rd := s.NewRequestDecoder(w, r).
				DecodeJSON(&req).
				Validate(func() error {
					return validation.ValidateTraitValues(req.Preferences, s.store.AttributeCount())
				})
			if rd.RespondError() {
				return
			}

			s.store.SetPreferences(req.Preferences)
			s.respondJSON(w, http.StatusOK, StatusResponse{Status: "updated"})
		}).
		NotAllowed()
}

func (s *Server) handleCentral(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Post(func() {
			var req CentralRequest
			if s.NewRequestDecoder(w, r).DecodeJSON(&req).RespondError() {
				return
			}

			if err := s.store.SetCentral(req.NodeID); err != nil {
				if errors.Is(err, galaxy.ErrNodeNotFound) {
					s.respondError(w, http.StatusNotFound, err.Error())
					return
				}
				s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "central update"))
				return
			}
			s.respondJSON(w, http.StatusOK, StatusResponse{Status: "updated"})
		}).
		NotAllowed()
}

func (s *Server) handleTraits(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Put(func() {
			var req TraitsRequest
			rd := s.NewRequestDecoder(w, r).
				DecodeJSON(&req).
				Validate(func() error {
					return validation.ValidateTraitValues(req.Traits, s.store.AttributeCount())
				})
			if rd.RespondError() {
				return
			}

			if err := s.store.UpdateTraits(req.NodeID, req.Traits); err != nil {
				if errors.Is(err, galaxy.ErrNodeNotFound) {
					s.respondError(w, http.StatusNotFound, err.Error())
					return
				}
				s.respondError(w, http.StatusBadRequest, err.Error())
				return
			}
			s.respondJSON(w, http.StatusOK, StatusResponse{Status: "updated"})
		}).
		NotAllowed()
}

func (s *Server) handleDrag(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Post(func() {
			var req DragRequest
			if s.NewRequestDecoder(w, r).DecodeJSON(&req).RespondError() {
				return
			}

			var err error
			switch req.Action {
			case DragBegin:
				err = s.store.BeginDrag(req.NodeID)
			case DragMove:
				err = s.store.DragTo(req.NodeID, req.Position)
			case DragEnd:
				s.store.EndDrag(req.NodeID)
			default:
				s.respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown drag action %q", req.Action))
				return
			}

			if err != nil {
				if errors.Is(err, galaxy.ErrNodeNotFound) {
					s.respondError(w, http.StatusNotFound, err.Error())
					return
				}
				s.respondError(w, http.StatusBadRequest, err.Error())
				return
			}
			s.respondJSON(w, http.StatusOK, StatusResponse{Status: req.Action})
		}).
		NotAllowed()
}

func (s *Server) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Post(func() {
			s.driver.InvalidateEquilibrium()
			s.respondJSON(w, http.StatusOK, StatusResponse{Status: "invalidated"})
		}).
		NotAllowed()
}

func (s *Server) handleSnap(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Post(func() {
			if !s.driver.Settled() {
				s.respondError(w, http.StatusConflict, "no settled arrangement to snap to")
				return
			}
			s.driver.ForceSnapToEquilibrium()
			s.respondJSON(w, http.StatusOK, StatusResponse{Status: "snapped"})
		}).
		NotAllowed()
}

func (s *Server) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Post(func() {
			var req validation.GenerateRequest
			rd := s.NewRequestDecoder(w, r).
				DecodeJSON(&req).
				Validate(func() error {
					return validation.ValidateGenerateRequest(&req)
				})
			if rd.RespondError() {
				return
			}

			nodes := galaxy.GenerateNodes(req.Count, req.Attributes, req.TraitNames, req.Seed)
			if err := s.store.ReplaceNodes(nodes); err != nil {
				s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "node regeneration"))
				return
			}
			s.respondJSON(w, http.StatusOK, StatusResponse{Status: "regenerated"})
		}).
		NotAllowed()
}
