package gantt

import (
	"fmt"
	"slices"
)

// Role is the canonical meaning of a data column.
type Role string

const (
	RoleStart    Role = "start"
	RoleDuration Role = "duration"
	RoleGroupID  Role = "group_id"
)

// Roles returns all roles in validation order.
func Roles() []Role {
	return []Role{RoleStart, RoleDuration, RoleGroupID}
}

// MandatoryRoles returns the roles a data file must provide.
func MandatoryRoles() []Role {
	return []Role{RoleStart, RoleDuration}
}

// ColumnNames maps each role to the column name used in the data file.
type ColumnNames struct {
	Start    string `mapstructure:"start" yaml:"start"`
	Duration string `mapstructure:"duration" yaml:"duration"`
	GroupID  string `mapstructure:"group_id" yaml:"group_id"`
}

// DefaultColumnNames uses the role names verbatim as column names.
func DefaultColumnNames() ColumnNames {
	return ColumnNames{
		Start:    string(RoleStart),
		Duration: string(RoleDuration),
		GroupID:  string(RoleGroupID),
	}
}

// Name returns the column name configured for role.
func (n ColumnNames) Name(role Role) string {
	switch role {
	case RoleStart:
		return n.Start
	case RoleDuration:
		return n.Duration
	case RoleGroupID:
		return n.GroupID
	}
	return ""
}

// Recognized returns the configured column names in role order.
func (n ColumnNames) Recognized() []string {
	out := make([]string, 0, len(Roles()))
	for _, role := range Roles() {
		out = append(out, n.Name(role))
	}
	return out
}

// Mandatory returns the column names of the mandatory roles.
func (n ColumnNames) Mandatory() []string {
	out := make([]string, 0, len(MandatoryRoles()))
	for _, role := range MandatoryRoles() {
		out = append(out, n.Name(role))
	}
	return out
}

// Validate checks that every role has a column name and that no two roles
// share one.
func (n ColumnNames) Validate() error {
	seen := make(map[string]Role, len(Roles()))
	for _, role := range Roles() {
		name := n.Name(role)
		if name == "" {
			return fmt.Errorf("no column name configured for role %q", role)
		}
		if other, dup := seen[name]; dup {
			return fmt.Errorf("roles %q and %q both use column %q", other, role, name)
		}
		seen[name] = role
	}
	return nil
}

// Descriptor maps the roles whose columns survived validation to their
// column names. It is built once per load and not modified afterwards.
type Descriptor struct {
	columns map[Role]string
}

// NewDescriptor keeps the roles of names whose column is listed in valid.
func NewDescriptor(names ColumnNames, valid []string) Descriptor {
	d := Descriptor{columns: make(map[Role]string, len(valid))}
	for _, role := range Roles() {
		if name := names.Name(role); slices.Contains(valid, name) {
			d.columns[role] = name
		}
	}
	return d
}

// Column returns the column name of role and whether the role is available.
func (d Descriptor) Column(role Role) (string, bool) {
	name, ok := d.columns[role]
	return name, ok
}

// Has reports whether role survived validation.
func (d Descriptor) Has(role Role) bool {
	_, ok := d.columns[role]
	return ok
}
