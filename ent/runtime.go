// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/jordanlanch/salespipe/ent/activity"
	"github.com/jordanlanch/salespipe/ent/lead"
	"github.com/jordanlanch/salespipe/ent/schema"
	"github.com/jordanlanch/salespipe/ent/user"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	activityFields := schema.Activity{}.Fields()
	_ = activityFields
	// activityDescTitle is the schema descriptor for title field.
	activityDescTitle := activityFields[1].Descriptor()
	// activity.TitleValidator is a validator for the "title" field. It is called by the builders before save.
	activity.TitleValidator = activityDescTitle.Validators[0].(func(string) error)
	// activityDescLeadID is the schema descriptor for lead_id field.
	activityDescLeadID := activityFields[3].Descriptor()
	// activity.LeadIDValidator is a validator for the "lead_id" field. It is called by the builders before save.
	activity.LeadIDValidator = activityDescLeadID.Validators[0].(func(int) error)
	// activityDescUserID is the schema descriptor for user_id field.
	activityDescUserID := activityFields[4].Descriptor()
	// activity.UserIDValidator is a validator for the "user_id" field. It is called by the builders before save.
	activity.UserIDValidator = activityDescUserID.Validators[0].(func(int) error)
	// activityDescCreatedAt is the schema descriptor for created_at field.
	activityDescCreatedAt := activityFields[7].Descriptor()
	// activity.DefaultCreatedAt holds the default value on creation for the created_at field.
	activity.DefaultCreatedAt = activityDescCreatedAt.Default.(func() time.Time)
	// activityDescUpdatedAt is the schema descriptor for updated_at field.
	activityDescUpdatedAt := activityFields[8].Descriptor()
	// activity.DefaultUpdatedAt holds the default value on creation for the updated_at field.
	activity.DefaultUpdatedAt = activityDescUpdatedAt.Default.(func() time.Time)
	// activity.UpdateDefaultUpdatedAt holds the default value on update for the updated_at field.
	activity.UpdateDefaultUpdatedAt = activityDescUpdatedAt.UpdateDefault.(func() time.Time)
	leadFields := schema.Lead{}.Fields()
	_ = leadFields
	// leadDescFirstName is the schema descriptor for first_name field.
	leadDescFirstName := leadFields[0].Descriptor()
	// lead.FirstNameValidator is a validator for the "first_name" field. It is called by the builders before save.
	lead.FirstNameValidator = leadDescFirstName.Validators[0].(func(string) error)
	// leadDescLastName is the schema descriptor for last_name field.
	leadDescLastName := leadFields[1].Descriptor()
	// lead.LastNameValidator is a validator for the "last_name" field. It is called by the builders before save.
	lead.LastNameValidator = leadDescLastName.Validators[0].(func(string) error)
	// leadDescEmail is the schema descriptor for email field.
	leadDescEmail := leadFields[2].Descriptor()
	// lead.EmailValidator is a validator for the "email" field. It is called by the builders before save.
	lead.EmailValidator = leadDescEmail.Validators[0].(func(string) error)
	// leadDescStatusChangedAt is the schema descriptor for status_changed_at field.
	leadDescStatusChangedAt := leadFields[7].Descriptor()
	// lead.DefaultStatusChangedAt holds the default value on creation for the status_changed_at field.
	lead.DefaultStatusChangedAt = leadDescStatusChangedAt.Default.(func() time.Time)
	// leadDescEstimatedValue is the schema descriptor for estimated_value field.
	leadDescEstimatedValue := leadFields[9].Descriptor()
	// lead.DefaultEstimatedValue holds the default value on creation for the estimated_value field.
	lead.DefaultEstimatedValue = leadDescEstimatedValue.Default.(float64)
	// leadDescCreatedAt is the schema descriptor for created_at field.
	leadDescCreatedAt := leadFields[13].Descriptor()
	// lead.DefaultCreatedAt holds the default value on creation for the created_at field.
	lead.DefaultCreatedAt = leadDescCreatedAt.Default.(func() time.Time)
	// leadDescUpdatedAt is the schema descriptor for updated_at field.
	leadDescUpdatedAt := leadFields[14].Descriptor()
	// lead.DefaultUpdatedAt holds the default value on creation for the updated_at field.
	lead.DefaultUpdatedAt = leadDescUpdatedAt.Default.(func() time.Time)
	// lead.UpdateDefaultUpdatedAt holds the default value on update for the updated_at field.
	lead.UpdateDefaultUpdatedAt = leadDescUpdatedAt.UpdateDefault.(func() time.Time)
	userFields := schema.User{}.Fields()
	_ = userFields
	// userDescEmail is the schema descriptor for email field.
	userDescEmail := userFields[0].Descriptor()
	// user.EmailValidator is a validator for the "email" field. It is called by the builders before save.
	user.EmailValidator = userDescEmail.Validators[0].(func(string) error)
	// userDescPasswordHash is the schema descriptor for password_hash field.
	userDescPasswordHash := userFields[1].Descriptor()
	// user.PasswordHashValidator is a validator for the "password_hash" field. It is called by the builders before save.
	user.PasswordHashValidator = userDescPasswordHash.Validators[0].(func(string) error)
	// userDescFirstName is the schema descriptor for first_name field.
	userDescFirstName := userFields[2].Descriptor()
	// user.FirstNameValidator is a validator for the "first_name" field. It is called by the builders before save.
	user.FirstNameValidator = userDescFirstName.Validators[0].(func(string) error)
	// userDescLastName is the schema descriptor for last_name field.
	userDescLastName := userFields[3].Descriptor()
	// user.LastNameValidator is a validator for the "last_name" field. It is called by the builders before save.
	user.LastNameValidator = userDescLastName.Validators[0].(func(string) error)
	// userDescIsActive is the schema descriptor for is_active field.
	userDescIsActive := userFields[5].Descriptor()
	// user.DefaultIsActive holds the default value on creation for the is_active field.
	user.DefaultIsActive = userDescIsActive.Default.(bool)
	// userDescCreatedAt is the schema descriptor for created_at field.
	userDescCreatedAt := userFields[7].Descriptor()
	// user.DefaultCreatedAt holds the default value on creation for the created_at field.
	user.DefaultCreatedAt = userDescCreatedAt.Default.(func() time.Time)
	// userDescUpdatedAt is the schema descriptor for updated_at field.
	userDescUpdatedAt := userFields[8].Descriptor()
	// user.DefaultUpdatedAt holds the default value on creation for the updated_at field.
	user.DefaultUpdatedAt = userDescUpdatedAt.Default.(func() time.Time)
	// user.UpdateDefaultUpdatedAt holds the default value on update for the updated_at field.
	user.UpdateDefaultUpdatedAt = userDescUpdatedAt.UpdateDefault.(func() time.Time)
}
