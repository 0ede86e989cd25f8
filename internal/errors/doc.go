// Package errors provides structured errors for the rpg-progression module.
//
// Every expected business failure of the character core is an *Error
// carrying a Code. Callers branch on the code instead of on message text:
//
//	inst, err := store.AddToLocation(itemID, 3, entities.LocationBag)
//	if errors.IsCapacityFull(err) {
//	    // offer to send the overflow to storage
//	}
//
// # Codes
//
// General codes mirror gRPC (NotFound, InvalidArgument, Internal, ...).
// Domain codes describe inventory and progression failures:
//   - ItemNotFound: the catalog or the store has no such item
//   - DatabaseMissing: no item catalog is attached
//   - InvalidOperation: non-positive quantity, zero-point allocation, forbidden location
//   - InsufficientQuantity: removing or allocating more than is held
//   - AlreadyInLocation: moving an item to where it already is
//   - BagFull, PocketFull, StorageFull, EquipmentFull: per-location capacity
//   - SlotIncompatible: the item cannot go into the requested equipment slot
//
// # Metadata and wrapping
//
//	err := errors.ItemNotFoundf("item %s not found", id).WithMeta("item_id", id)
//	return errors.Wrap(err, "failed to equip")
//
// Wrap keeps the original code. WrapWithCode replaces it.
//
// # Validation
//
// Config structs validate with the builder:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidatePositive("bag", cfg.Bag, vb)
//	return vb.Build()
//
// # Exit status
//
// Codes map onto gRPC status codes; ExitCode uses that number as the
// process exit status of rpgcore.
package errors
