package dnd5e

//go:generate mockgen -destination=mock/mock_client.go -package=mockdnd5e . Client

// Client reads monster stat blocks from the D&D 5e SRD API
type Client interface {
	GetMonster(key string) (*Monster, error)
}
