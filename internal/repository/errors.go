// Package repository implements data access over MySQL. Sentinel
// errors declared here let handlers map storage outcomes onto the
// response taxonomy (404/403/409/400) without inspecting driver
// error strings themselves.
package repository

import "errors"

// ErrStoreNotFound is returned when a referenced store does not exist.
var ErrStoreNotFound = errors.New("store not found")

// ErrNoticeNotFound is returned when a notice lookup matches no row
// for the given store.
var ErrNoticeNotFound = errors.New("notice not found")

// ErrFavoriteExists is returned when a user favorites a store they
// already favorited. Surfaced as a conflict so double submissions are
// visible to the client.
var ErrFavoriteExists = errors.New("favorite already exists")

// ErrFavoriteNotFound is returned when removing a favorite that was
// never added.
var ErrFavoriteNotFound = errors.New("favorite not found")

// ErrEmailExists is returned when signing up with an email that is
// already registered.
var ErrEmailExists = errors.New("email already exists")

// ErrStdIDExists is returned when signing up with a student id that is
// already registered.
var ErrStdIDExists = errors.New("student id already exists")

// ErrForbidden is returned when the acting user is not the manager of
// record for the store they are trying to mutate. Handlers translate
// this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")
