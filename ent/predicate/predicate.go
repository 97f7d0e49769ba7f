// Code generated by ent, DO NOT EDIT.

package predicate

import (
	"entgo.io/ent/dialect/sql"
)

// Activity is the predicate function for activity builders.
type Activity func(*sql.Selector)

// Lead is the predicate function for lead builders.
type Lead func(*sql.Selector)

// User is the predicate function for user builders.
type User func(*sql.Selector)
