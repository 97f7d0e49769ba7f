package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// User holds the schema definition for the User entity.
type User struct {
	ent.Schema
}

// Fields of the User.
func (User) Fields() []ent.Field {
	return []ent.Field{
		field.String("email").
			Unique().
			NotEmpty().
			Comment("User email address"),
		field.String("password_hash").
			Sensitive().
			NotEmpty().
			Comment("Bcrypt hashed password"),
		field.String("first_name").
			NotEmpty().
			Comment("User first name"),
		field.String("last_name").
			NotEmpty().
			Comment("User last name"),
		field.Enum("role").
			Values("admin", "manager", "sales_executive").
			Default("sales_executive").
			Comment("Role for access control"),
		field.Bool("is_active").
			Default(true).
			Comment("Inactive users cannot authenticate or be assigned leads"),
		field.Time("last_login_at").
			Optional().
			Nillable().
			Comment("Last login timestamp"),
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

// Edges of the User.
func (User) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("created_leads", Lead.Type).
			Comment("Leads created by this user"),
		edge.To("assigned_leads", Lead.Type).
			Comment("Leads currently assigned to this user"),
		edge.To("activities", Activity.Type).
			Comment("Activities performed by this user"),
	}
}

// Indexes of the User.
func (User) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("email").Unique(),
		index.Fields("role"),
		index.Fields("is_active"),
		index.Fields("created_at"),
	}
}
