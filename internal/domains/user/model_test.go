package user

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		first   string
		last    string
		wantErr string
	}{
		{name: "valid", email: "jane@example.com", first: "Jane", last: "Doe"},
		{name: "normalizes email", email: "  JANE@Example.COM ", first: "Jane", last: "Doe"},
		{name: "bad email", email: "not-an-email", first: "Jane", last: "Doe", wantErr: "Invalid email format"},
		{name: "email with spaces", email: "jane doe@example.com", first: "Jane", last: "Doe", wantErr: "Invalid email format"},
		{name: "short first name", email: "jane@example.com", first: "J", last: "Doe", wantErr: "First name must be at least 2 characters"},
		{name: "short last name", email: "jane@example.com", first: "Jane", last: " D ", wantErr: "Last name must be at least 2 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := New(uuid.New(), tt.email, "hashed", tt.first, tt.last, RoleAuthor)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "jane@example.com", u.Email)
			assert.True(t, u.IsActive)
			assert.Equal(t, "Jane Doe", u.FullName())
		})
	}
}

func TestNewUserDefaultsToAuthor(t *testing.T) {
	u, err := New(uuid.New(), "jane@example.com", "hashed", "Jane", "Doe", "")
	require.NoError(t, err)
	assert.Equal(t, RoleAuthor, u.Role)
	assert.False(t, u.CanPublishContent())
}

func TestParseRole(t *testing.T) {
	for input, want := range map[string]Role{
		"ADMIN":  RoleAdmin,
		"editor": RoleEditor,
		"Author": RoleAuthor,
	} {
		got, err := ParseRole(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseRole("SUPERUSER")
	require.Error(t, err)
	assert.Equal(t, "Invalid user role: SUPERUSER", err.Error())
}

func TestRoleCanPublish(t *testing.T) {
	assert.True(t, RoleAdmin.CanPublish())
	assert.True(t, RoleEditor.CanPublish())
	assert.False(t, RoleAuthor.CanPublish())
}

func TestUpdateProfileEmailValidation(t *testing.T) {
	u, err := New(uuid.New(), "jane@example.com", "hashed", "Jane", "Doe", RoleEditor)
	require.NoError(t, err)

	bad := "nope"
	err = u.UpdateProfile(nil, nil, &bad)
	require.Error(t, err)
	assert.Equal(t, "Invalid email format", err.Error())
	assert.Equal(t, "jane@example.com", u.Email)

	newFirst := "Janet"
	require.NoError(t, u.UpdateProfile(&newFirst, nil, nil))
	assert.Equal(t, "Janet", u.FirstName)
}

func TestActivateDeactivate(t *testing.T) {
	u, err := New(uuid.New(), "jane@example.com", "hashed", "Jane", "Doe", RoleAuthor)
	require.NoError(t, err)

	u.Deactivate()
	assert.False(t, u.IsActive)
	u.Activate()
	assert.True(t, u.IsActive)
}

func TestRecordLogin(t *testing.T) {
	u, err := New(uuid.New(), "jane@example.com", "hashed", "Jane", "Doe", RoleAuthor)
	require.NoError(t, err)

	assert.Nil(t, u.LastLogin)
	u.RecordLogin()
	require.NotNil(t, u.LastLogin)
}
