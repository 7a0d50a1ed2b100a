package httpserver

import (
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/and161185/dogial/internal/api"
	"github.com/and161185/dogial/internal/convert"
	"github.com/and161185/dogial/internal/errs"
	"github.com/and161185/dogial/internal/metrics"
)

// --- auth ---

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, s.log, err)
		return
	}
	tok, err := s.auth.Login(r.Context(), req.Email, req.Password, remoteIP(r))
	s.countLogin(err)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToLoginResponse(tok))
}

func (s *Server) countLogin(err error) {
	if s.m == nil {
		return
	}
	switch {
	case err == nil:
		s.m.Login(metrics.LoginOK)
	case errors.Is(err, errs.ErrRateLimited):
		s.m.Login(metrics.LoginRateLimited)
	default:
		s.m.Login(metrics.LoginRejected)
	}
}

// --- users ---

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req api.UserRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, s.log, err)
		return
	}
	u, err := s.users.Create(r.Context(), req.Email, req.Secret())
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	w.Header().Set("Location", "/v1/users/"+u.ID.String())
	writeJSON(w, http.StatusCreated, convert.ToUserResponse(u))
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	u, err := s.users.Get(r.Context(), id)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToUserResponse(u))
}

func (s *Server) replaceUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	var req api.UserRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, s.log, err)
		return
	}
	u, err := s.users.Update(r.Context(), id, convert.FromUserRequest(req))
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToUserResponse(u))
}

func (s *Server) patchUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	var req api.UserPatch
	if err := decode(w, r, &req); err != nil {
		writeError(w, s.log, err)
		return
	}
	u, err := s.users.Update(r.Context(), id, convert.FromUserPatch(req))
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToUserResponse(u))
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	if err := s.users.Delete(r.Context(), id); err != nil {
		writeError(w, s.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listUserDogs(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	list, err := s.dogs.ListByOwner(r.Context(), id)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToDogResponses(list))
}

// --- dogs ---

func (s *Server) createDog(w http.ResponseWriter, r *http.Request) {
	var req api.DogRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, s.log, err)
		return
	}
	in, err := convert.FromDogRequest(req)
	if err != nil {
		writeError(w, s.log, fmt.Errorf("%w: %v", errs.ErrInvalidInput, err))
		return
	}
	d, err := s.dogs.Create(r.Context(), in)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	w.Header().Set("Location", "/v1/dogs/"+d.ID.String())
	writeJSON(w, http.StatusCreated, convert.ToDogResponse(d))
}

func (s *Server) getDog(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	d, err := s.dogs.Get(r.Context(), id)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToDogResponse(d))
}

func (s *Server) replaceDog(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	var req api.DogRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, s.log, err)
		return
	}
	in, err := convert.FromDogRequest(req)
	if err != nil {
		writeError(w, s.log, fmt.Errorf("%w: %v", errs.ErrInvalidInput, err))
		return
	}
	d, err := s.dogs.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToDogResponse(d))
}

func (s *Server) patchDog(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	var req api.DogPatch
	if err := decode(w, r, &req); err != nil {
		writeError(w, s.log, err)
		return
	}
	p, err := convert.FromDogPatch(req)
	if err != nil {
		writeError(w, s.log, fmt.Errorf("%w: %v", errs.ErrInvalidInput, err))
		return
	}
	d, err := s.dogs.Patch(r.Context(), id, p)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToDogResponse(d))
}

func (s *Server) deleteDog(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	if err := s.dogs.Delete(r.Context(), id); err != nil {
		writeError(w, s.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
