package models

// File permissions for files written by the application.
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
)
