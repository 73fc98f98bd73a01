package seed

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"riskdesk/internal/logger"
	"riskdesk/internal/model"
	"riskdesk/internal/scoring"
)

// FirstSetup makes sure the fixed RBAC rows and a bootstrap admin exist.
// Every step is idempotent so the call is safe on each startup.
func FirstSetup(db *gorm.DB) error {
	company := model.Company{
		Name:         "Default Carrier",
		ContactEmail: "ops@example.com",
		Industry:     "Insurance",
		Active:       true,
	}
	if err := db.Where("name = ?", company.Name).FirstOrCreate(&company).Error; err != nil {
		return err
	}

	adminRole := model.Role{Name: "Administrator", Slug: model.RoleAdmin, IsSystem: true}
	underwriterRole := model.Role{Name: "Underwriter", Slug: model.RoleUnderwriter, IsSystem: true}
	viewerRole := model.Role{Name: "Viewer", Slug: model.RoleViewer, IsSystem: true}
	for _, r := range []*model.Role{&adminRole, &underwriterRole, &viewerRole} {
		if err := db.Where("slug = ?", r.Slug).FirstOrCreate(r).Error; err != nil {
			return err
		}
	}

	perms := []model.Permission{
		{Key: "clients:read", Description: "View insured entities", Resource: "clients", Action: "read"},
		{Key: "clients:write", Description: "Manage insured entities", Resource: "clients", Action: "write"},
		{Key: "assessments:read", Description: "View risk assessments", Resource: "assessments", Action: "read"},
		{Key: "assessments:write", Description: "Run risk assessments", Resource: "assessments", Action: "write"},
		{Key: "users:admin", Description: "Manage users and roles", Resource: "users", Action: "admin"},
	}

	permIDs := map[string]uint{}
	for _, p := range perms {
		tmp := p
		if err := db.Where("`key` = ?", tmp.Key).FirstOrCreate(&tmp).Error; err != nil {
			return err
		}
		permIDs[tmp.Key] = tmp.ID
	}

	// Insert join rows directly; the join table has no model of its own.
	ensureRolePerm := func(roleID, permID uint) error {
		return db.Exec("INSERT IGNORE INTO role_permissions (role_id, permission_id) VALUES (?, ?)", roleID, permID).Error
	}

	// Admin gets everything.
	for _, pid := range permIDs {
		if err := ensureRolePerm(adminRole.ID, pid); err != nil {
			return err
		}
	}

	// Underwriters manage clients and assessments.
	for _, k := range []string{"clients:read", "clients:write", "assessments:read", "assessments:write"} {
		if err := ensureRolePerm(underwriterRole.ID, permIDs[k]); err != nil {
			return err
		}
	}

	// Viewers are read-only.
	for _, k := range []string{"clients:read", "assessments:read"} {
		if err := ensureRolePerm(viewerRole.ID, permIDs[k]); err != nil {
			return err
		}
	}

	// Bootstrap admin user. The default password must be rotated on
	// first login in any real deployment.
	var admin model.User
	err := db.Where("email = ?", "admin@example.com").First(&admin).Error
	if err == gorm.ErrRecordNotFound {
		hash, herr := bcrypt.GenerateFromPassword([]byte("changeme123"), 10)
		if herr != nil {
			return herr
		}
		admin = model.User{
			CompanyID:    company.ID,
			Name:         "Administrator",
			Email:        "admin@example.com",
			PasswordHash: string(hash),
			Status:       model.UserActive,
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		if err := db.Model(&admin).Association("Roles").Append(&adminRole); err != nil {
			return err
		}
		logger.L.Infow("bootstrap admin created", "email", admin.Email)
	} else if err != nil {
		return err
	}

	return seedDefaultWeights(db)
}

// seedDefaultWeights writes the component weights of the composite score
// so operators can tune them without a deploy.
func seedDefaultWeights(db *gorm.DB) error {
	w := scoring.DefaultWeights()
	defaults := map[string]float64{
		"industry":     w.Industry,
		"professional": w.Professional,
		"financial":    w.Financial,
		"state":        w.State,
		"education":    w.Education,
		"experience":   w.Experience,
	}
	for key, weight := range defaults {
		factor := model.RiskFactor{
			Category: model.FactorCategoryWeight,
			Key:      key,
			Weight:   weight,
			Active:   true,
		}
		if err := db.Where("category = ? AND `key` = ?", factor.Category, factor.Key).
			FirstOrCreate(&factor).Error; err != nil {
			return err
		}
	}
	return nil
}
