package models

import "github.com/iudanet/edukeeper/pkg/api"

// DocumentToAPI converts a document into its wire representation.
func DocumentToAPI(d *Document) api.Document {
	return api.Document{
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
		Collection: d.Collection,
		ID:         d.ID,
		Data:       d.Data,
		Version:    d.Version,
	}
}

// DocumentFromAPI converts a wire document into the model.
func DocumentFromAPI(d api.Document) *Document {
	return &Document{
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
		Collection: d.Collection,
		ID:         d.ID,
		Data:       d.Data,
		Version:    d.Version,
	}
}

// WriteOpToAPI converts a write into its wire representation.
func WriteOpToAPI(op WriteOp) api.WriteOp {
	return api.WriteOp{
		Type:            string(op.Type),
		Collection:      op.Collection,
		ID:              op.ID,
		Data:            op.Data,
		ExpectedVersion: op.ExpectedVersion,
	}
}

// WriteOpFromAPI converts a wire write into the model.
func WriteOpFromAPI(op api.WriteOp) WriteOp {
	return WriteOp{
		Type:            WriteType(op.Type),
		Collection:      op.Collection,
		ID:              op.ID,
		Data:            op.Data,
		ExpectedVersion: op.ExpectedVersion,
	}
}
