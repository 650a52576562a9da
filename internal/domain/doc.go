// Package domain defines the core business entities of the tutor backend:
// users, study sessions, and collections, along with their validation rules.
package domain
