package protocol

import "bargainer/models"

// Book retains the current offer per participant. Each inbound offer set is
// a full replacement keyed by owner index: a later record overwrites that
// owner's previous offer. Records with a nil price or quantity mean "no
// offer yet" and are filtered out so they can never blank a real offer.
//
// Retaining the structured offer here is what the accept flow reads from;
// price and quantity are never re-derived from rendered text.
type Book struct {
	localIndex int
	local      *models.Offer
	remote     *models.Offer
}

func NewBook(localIndex int) *Book {
	return &Book{localIndex: localIndex}
}

// Apply merges one inbound offer set and reports whether either displayed
// offer changed. Applying the same set twice is a no-op the second time.
func (b *Book) Apply(records []models.OfferRecord) bool {
	changed := false
	for _, rec := range records {
		if rec.Price == nil || rec.Quantity == nil {
			continue
		}
		offer := models.Offer{
			OwnerIndex: rec.OwnerIndex,
			Price:      *rec.Price,
			Quantity:   *rec.Quantity,
			Stamp:      rec.Stamp,
		}
		if rec.OwnerIndex == b.localIndex {
			if b.local == nil || *b.local != offer {
				b.local = &offer
				changed = true
			}
		} else {
			if b.remote == nil || *b.remote != offer {
				b.remote = &offer
				changed = true
			}
		}
	}
	return changed
}

// Local returns the local participant's current offer, if any.
func (b *Book) Local() (models.Offer, bool) {
	if b.local == nil {
		return models.Offer{}, false
	}
	return *b.local, true
}

// Remote returns the counterpart's current offer, if any. Its presence is
// what reveals the accept control.
func (b *Book) Remote() (models.Offer, bool) {
	if b.remote == nil {
		return models.Offer{}, false
	}
	return *b.remote, true
}

// Clear drops both offers; the test harness uses this between resets.
func (b *Book) Clear() {
	b.local = nil
	b.remote = nil
}
