//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateVersionRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request CreateVersionRequest
		wantErr bool
	}{
		{name: "empty request", request: CreateVersionRequest{}, wantErr: false},
		{name: "named", request: CreateVersionRequest{Name: "Backend roles"}, wantErr: false},
		{name: "duplicate from uuid", request: CreateVersionRequest{SourceID: NewID()}, wantErr: false},
		{name: "duplicate from legacy id", request: CreateVersionRequest{SourceID: "1700000000000"}, wantErr: false},
		{name: "source id too long", request: CreateVersionRequest{SourceID: strings.Repeat("a", 65)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFieldEditRequest_Validate(t *testing.T) {
	assert.NoError(t, (&FieldEditRequest{Field: "company", Value: ""}).Validate())
	assert.Error(t, (&FieldEditRequest{Value: "Acme"}).Validate())
}

func TestComposeBulletRequest_Validate(t *testing.T) {
	assert.NoError(t, (&ComposeBulletRequest{Action: "Built", Scope: "a cache"}).Validate())
	assert.Error(t, (&ComposeBulletRequest{Action: "Built"}).Validate())
	assert.Error(t, (&ComposeBulletRequest{Scope: "a cache"}).Validate())
}

func TestMatchRequest_Validate(t *testing.T) {
	assert.NoError(t, (&MatchRequest{JobDescription: "Go engineer"}).Validate())
	assert.Error(t, (&MatchRequest{}).Validate())
}

func TestUpdateVersionRequest_Validate(t *testing.T) {
	name := "Renamed"
	assert.NoError(t, (&UpdateVersionRequest{Name: &name}).Validate())
	assert.NoError(t, (&UpdateVersionRequest{SectionOrder: []string{"summary", "skills"}}).Validate())
	assert.Error(t, (&UpdateVersionRequest{SectionOrder: []string{"summary", ""}}).Validate())
	assert.Error(t, (&UpdateVersionRequest{SectionOrder: []string{"summary", "bogus"}}).Validate())
	assert.Error(t, (&UpdateVersionRequest{SectionOrder: []string{"summary", "summary"}}).Validate())
	assert.Error(t, (&UpdateVersionRequest{HiddenSections: []string{"nonsense"}}).Validate())
	assert.NoError(t, (&UpdateVersionRequest{HiddenSections: []string{"certifications"}}).Validate())
}

func TestComposeBulletRequest_Target(t *testing.T) {
	assert.NoError(t, (&ComposeBulletRequest{Action: "Built", Scope: "a cache", Section: "experience", ID: "e1"}).Validate())
	assert.Error(t, (&ComposeBulletRequest{Action: "Built", Scope: "a cache", Section: "education", ID: "e1"}).Validate())
	assert.Error(t, (&ComposeBulletRequest{Action: "Built", Scope: "a cache", Section: "projects"}).Validate())
}

func TestMatchRequest_JobURL(t *testing.T) {
	assert.NoError(t, (&MatchRequest{JobURL: "https://boards.greenhouse.io/acme/jobs/1"}).Validate())
	assert.Error(t, (&MatchRequest{JobURL: "not a url"}).Validate())
}
