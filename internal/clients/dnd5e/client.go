package dnd5e

import (
	"net/http"
	"strings"

	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	apiEntities "github.com/fadedpez/dnd5e-api/entities"
)

// Monster is the part of an SRD stat block a battle map needs
type Monster struct {
	Key        string
	Name       string
	ArmorClass int
	HitPoints  int
	HitDice    string
}

// TODO: add context to functions once the upstream client accepts one
type client struct {
	client dnd5e.Interface
}

type Config struct {
	HttpClient *http.Client
}

func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("cfg is required")
	}

	dndClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client: cfg.HttpClient,
	})
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to create dnd5e api client")
	}

	return &client{
		client: dndClient,
	}, nil
}

func (c *client) GetMonster(key string) (*Monster, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return nil, dnderr.InvalidArgument("monster key is required")
	}

	response, err := c.client.GetMonster(key)
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeTransportFailure, "failed to fetch monster "+key)
	}
	if response == nil {
		return nil, dnderr.NotFoundf("monster %s not found", key)
	}

	return apiToMonster(response), nil
}

func apiToMonster(input *apiEntities.Monster) *Monster {
	return &Monster{
		Key:        input.Key,
		Name:       input.Name,
		ArmorClass: int(input.ArmorClass),
		HitPoints:  int(input.HitPoints),
		HitDice:    input.HitDice,
	}
}
