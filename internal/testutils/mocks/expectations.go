// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"go.uber.org/mock/gomock"

	catalogmock "github.com/KirkDiggler/rpg-progression/internal/catalog/mock"
	"github.com/KirkDiggler/rpg-progression/internal/entities"
)

// ExpectCatalog makes the mock serve the given definitions any number of
// times and report every other id as unknown.
func ExpectCatalog(mockCatalog *catalogmock.MockCatalog, defs ...*entities.ItemDefinition) {
	for _, def := range defs {
		mockCatalog.EXPECT().
			GetItem(def.ID).
			Return(def, true).
			AnyTimes()
	}
	mockCatalog.EXPECT().
		GetItem(gomock.Any()).
		Return(nil, false).
		AnyTimes()
}

// ExpectCatalogMiss expects exactly one lookup of an unknown id
func ExpectCatalogMiss(mockCatalog *catalogmock.MockCatalog, itemID string) *gomock.Call {
	return mockCatalog.EXPECT().
		GetItem(itemID).
		Return(nil, false)
}
