package notify

import "github.com/KirkDiggler/rpg-toolkit/core"

// EntityTypeCharacter is the rpg-toolkit entity type of a character
const EntityTypeCharacter = "character"

// CharacterEntity identifies a character as an rpg-toolkit entity
type CharacterEntity struct {
	ID string
}

// GetID returns the character's ID
func (c *CharacterEntity) GetID() string {
	return c.ID
}

// GetType returns the entity type for rpg-toolkit
func (c *CharacterEntity) GetType() string {
	return EntityTypeCharacter
}

// Compile-time check that our entity wrapper implements core.Entity
var _ core.Entity = (*CharacterEntity)(nil)
