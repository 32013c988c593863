// Package timezone keeps the application clock in one location.
//
// The location comes from APP_TIMEZONE and defaults to UTC. Calendar dates
// (reservation check-in and check-out) are parsed and formatted in that
// location with ParseDate and FormatDate so "2024-06-10" means the same day
// everywhere in the service.
package timezone
