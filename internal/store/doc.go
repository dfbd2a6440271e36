// Package store persists normalized recipes in SQLite.
//
// The schema evolved additively: the original table held only url, title,
// ingredients, and steps; utensils and cook_time arrived later, then
// prep_time. Migrations are embedded and applied in order on open, and
// reads tolerate NULLs in the later columns so rows written by older
// versions keep working.
package store
