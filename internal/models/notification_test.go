package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"sociogram/pkg/constants"
)

func TestPreferencesAllows_FailOpen(t *testing.T) {
	var nilPrefs *NotificationPreferences
	assert.True(t, nilPrefs.Allows(PrefSomeoneLikedMyPosts))

	empty := &NotificationPreferences{}
	assert.True(t, empty.Allows(PrefSomeoneLikedMyPosts))

	partial := &NotificationPreferences{Settings: map[string]bool{
		PrefSomeoneFollowedMe: false,
	}}
	assert.True(t, partial.Allows(PrefSomeoneLikedMyPosts))
}

func TestPreferencesAllows_ExplicitFalseSuppresses(t *testing.T) {
	prefs := &NotificationPreferences{Settings: map[string]bool{
		PrefSomeoneLikedMyPosts: false,
	}}
	assert.False(t, prefs.Allows(PrefSomeoneLikedMyPosts))
}

func TestPreferenceKeyForType(t *testing.T) {
	key, ok := PreferenceKeyForType(constants.NotificationPostLike)
	assert.True(t, ok)
	assert.Equal(t, PrefSomeoneLikedMyPosts, key)

	_, ok = PreferenceKeyForType("system_announcement")
	assert.False(t, ok)
}

func TestDefaultNotificationPreferences_AllEnabled(t *testing.T) {
	prefs := DefaultNotificationPreferences(primitive.NewObjectID())
	assert.Len(t, prefs.Settings, 10)
	for key, enabled := range prefs.Settings {
		assert.True(t, enabled, "key %s", key)
	}
}
