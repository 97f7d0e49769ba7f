package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Lead holds the schema definition for the Lead entity.
type Lead struct {
	ent.Schema
}

// Fields of the Lead.
func (Lead) Fields() []ent.Field {
	return []ent.Field{
		field.String("first_name").
			NotEmpty().
			Comment("Prospect first name"),
		field.String("last_name").
			NotEmpty().
			Comment("Prospect last name"),
		field.String("email").
			NotEmpty().
			Comment("Prospect email address"),
		field.String("phone").
			Optional().
			Comment("Phone number, normalized to E.164 when parseable"),
		field.String("company").
			Optional().
			Comment("Company name"),
		field.String("title").
			Optional().
			Comment("Prospect job title"),
		field.Enum("status").
			Values("new", "contacted", "qualified", "proposal", "negotiation", "won", "lost").
			Default("new").
			Comment("Pipeline status"),
		field.Time("status_changed_at").
			Default(time.Now).
			Comment("When the status was last changed"),
		field.String("source").
			Optional().
			Comment("Acquisition source (website, referral, cold call, ...)"),
		field.Float("estimated_value").
			Default(0).
			Comment("Estimated deal value"),
		field.Text("notes").
			Optional().
			Comment("Free-form notes"),
		field.Int("assigned_to_id").
			Optional().
			Nillable().
			Comment("Current assignee; null when unassigned"),
		field.Int("created_by_id").
			Comment("User who created the lead"),
		field.Time("created_at").
			Default(time.Now).
			Immutable().
			Comment("Creation timestamp"),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now).
			Comment("Last update timestamp"),
	}
}

// Edges of the Lead.
func (Lead) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("assigned_to", User.Type).
			Ref("assigned_leads").
			Field("assigned_to_id").
			Unique(),
		edge.From("created_by", User.Type).
			Ref("created_leads").
			Field("created_by_id").
			Unique().
			Required(),
		edge.To("activities", Activity.Type).
			Comment("Audit and interaction records for this lead"),
	}
}

// Indexes of the Lead.
func (Lead) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("status"),
		index.Fields("assigned_to_id"),
		index.Fields("created_by_id"),
		index.Fields("source"),
		index.Fields("email"),
		index.Fields("assigned_to_id", "status"),
		index.Fields("created_at"),
	}
}
