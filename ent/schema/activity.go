package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Activity holds the schema definition for the Activity entity.
type Activity struct {
	ent.Schema
}

// Fields of the Activity.
func (Activity) Fields() []ent.Field {
	return []ent.Field{
		field.Enum("type").
			Values("note", "call", "meeting", "email", "status_change").
			Comment("Activity kind"),
		field.String("title").
			NotEmpty().
			Comment("Short title"),
		field.Text("description").
			Optional().
			Comment("Longer free-form description"),
		field.Int("lead_id").
			Positive().
			Comment("Lead this activity belongs to"),
		field.Int("user_id").
			Positive().
			Comment("User who performed or recorded the activity"),
		field.Time("scheduled_at").
			Optional().
			Nillable().
			Comment("When the activity is scheduled to happen, if planned"),
		field.JSON("metadata", map[string]interface{}{}).
			Optional().
			Comment("Opaque structured payload (e.g. old_status/new_status)"),
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

// Edges of the Activity.
func (Activity) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("lead", Lead.Type).
			Ref("activities").
			Field("lead_id").
			Unique().
			Required(),
		edge.From("user", User.Type).
			Ref("activities").
			Field("user_id").
			Unique().
			Required(),
	}
}

// Indexes of the Activity.
func (Activity) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("lead_id", "created_at").
			StorageKey("idx_activities_lead_time"),
		index.Fields("user_id"),
		index.Fields("type"),
		index.Fields("scheduled_at"),
		index.Fields("created_at"),
	}
}
