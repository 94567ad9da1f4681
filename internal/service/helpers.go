package service

import "github.com/google/uuid"

func parseUserID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}
