package service

import (
	"context"
	"strings"

	"github.com/kaiwachat/kaiwa/internal/domain"
)

// CardKind selects the presentation view for an attachment. The set is
// closed and dispatched exhaustively over the attachment's file kind.
type CardKind string

const (
	CardImage    CardKind = "image"
	CardVideo    CardKind = "video"
	CardDocument CardKind = "document"
)

// Card is the per-attachment view model handed to the rendering layer.
// Every card carries the same status flags plus the delete binding (its id).
type Card struct {
	Id       domain.AttachmentId `json:"id"`
	Kind     CardKind            `json:"kind"`
	Name     string              `json:"name"`
	Preview  string              `json:"preview,omitempty"`
	Loading  bool                `json:"loading"`
	Deleting bool                `json:"deleting"`
	Errored  bool                `json:"errored"`
	Selected bool                `json:"selected"`

	// ShowDelete is the hover-delete affordance; suppressed while
	// selection mode is active in favor of the checkbox.
	ShowDelete   bool `json:"showDelete"`
	ShowCheckbox bool `json:"showCheckbox"`
}

// View is the panel's full render state, including the send gate.
type View struct {
	CanSend            bool     `json:"canSend"`
	Uploading          bool     `json:"uploading"`
	ErrorMessages      []string `json:"errorMessages,omitempty"`
	SelectionMode      bool     `json:"selectionMode"`
	SelectedCount      int      `json:"selectedCount"`
	BatchDeleteEnabled bool     `json:"batchDeleteEnabled"`
	Cards              []Card   `json:"cards"`
}

// Panel wires one conversation's store and selection state into view models
// and gates the send action on their aggregate state.
type Panel struct {
	store *Store
	sel   *Selection
}

func NewPanel(store *Store, sel *Selection) *Panel {
	return &Panel{store: store, sel: sel}
}

// View builds the current render state. Send is disabled while any upload
// is in flight, while any error message is outstanding, or while the
// composed text is empty and there is no loading override.
func (p *Panel) View(content string, loading bool) View {
	files := p.store.Files()
	uploading := false
	var errs []string
	for _, f := range files {
		if f.Uploading() {
			uploading = true
		}
		errs = append(errs, f.Errors...)
	}

	mode := p.sel.Active()
	cards := make([]Card, len(files))
	for i, f := range files {
		cards[i] = Card{
			Id:           f.Id,
			Kind:         cardKind(f.Kind),
			Name:         f.Name,
			Preview:      f.EncodedContent,
			Loading:      f.Uploading(),
			Deleting:     f.Deleting(),
			Errored:      len(f.Errors) > 0,
			Selected:     mode && p.sel.Selected(f.Id),
			ShowDelete:   !mode,
			ShowCheckbox: mode,
		}
	}

	emptyText := strings.TrimSpace(content) == ""

	return View{
		CanSend:            !uploading && len(errs) == 0 && !(emptyText && !loading),
		Uploading:          uploading,
		ErrorMessages:      errs,
		SelectionMode:      mode,
		SelectedCount:      p.sel.Count(),
		BatchDeleteEnabled: mode && p.sel.Count() > 0,
		Cards:              cards,
	}
}

// DeleteSelected batch-deletes the current selection, then clears it and
// leaves selection mode. Ids already gone from the store are skipped.
func (p *Panel) DeleteSelected(ctx context.Context, limit domain.LimitSpec) {
	p.store.DeleteMany(ctx, p.sel.Ids(), limit)
	p.sel.Deactivate()
}

func cardKind(k domain.FileKind) CardKind {
	switch k {
	case domain.KindImage:
		return CardImage
	case domain.KindVideo:
		return CardVideo
	case domain.KindDocument:
		return CardDocument
	}
	return CardDocument
}
