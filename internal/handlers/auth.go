package handlers

import (
	"net/http"

	"github.com/abrezinsky/luckydraw/internal/auth"
)

// LoginPageData holds data for the login template
type LoginPageData struct {
	Title string
	Error string
}

func (h *Handlers) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.CookieName); err == nil && h.Auth.ValidateSession(cookie.Value) {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	h.templates.Login.Execute(w, LoginPageData{Title: h.Title})
}

func (h *Handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	token, ok := h.Auth.Login(r.FormValue("password"))
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		h.templates.Login.Execute(w, LoginPageData{Title: h.Title, Error: "Invalid password"})
		return
	}

	auth.SetSessionCookie(w, token)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		h.Auth.Logout(cookie.Value)
	}
	auth.ClearSessionCookie(w)
	http.Redirect(w, r, auth.LoginPath, http.StatusFound)
}
