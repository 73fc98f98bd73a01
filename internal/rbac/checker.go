package rbac

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// Checker answers permission questions by joining the RBAC tables.
type Checker struct {
	DB *gorm.DB
}

// Can reports whether the user holds the named permission through any of
// their roles.
func (c Checker) Can(ctx context.Context, userID uint, permKey string) (bool, error) {
	var count int64
	err := c.DB.WithContext(ctx).
		Table("user_roles ur").
		Joins("JOIN roles r ON r.id = ur.role_id").
		Joins("JOIN role_permissions rp ON rp.role_id = r.id").
		Joins("JOIN permissions p ON p.id = rp.permission_id").
		Where("ur.user_id = ? AND p.`key` = ?", userID, permKey).
		Count(&count).Error
	return count > 0, err
}

// HasRole reports whether the user carries the role with the given slug.
func (c Checker) HasRole(ctx context.Context, userID uint, slug string) (bool, error) {
	var count int64
	err := c.DB.WithContext(ctx).
		Table("user_roles ur").
		Joins("JOIN roles r ON r.id = ur.role_id").
		Where("ur.user_id = ? AND r.slug = ?", userID, slug).
		Count(&count).Error
	return count > 0, err
}

// Key composes a permission key like "clients:write" from resource+action.
func Key(resource, action string) string {
	return strings.ToLower(resource + ":" + action)
}
