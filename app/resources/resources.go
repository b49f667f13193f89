// Package resources defines the serialization groups of the API: what a
// collection listing shows versus an item view.
package resources

import (
	"github.com/bilemo/api/app/models"
	"github.com/bilemo/api/pkg/auth"
	"github.com/bilemo/api/pkg/resource"
)

// ClientListItem is the client collection group.
func ClientListItem(c models.Client) resource.Map {
	return resource.Map{
		"id":          c.ID,
		"companyName": c.CompanyName,
	}
}

// ClientItem is the client item group; it embeds the client's users.
func ClientItem(c models.Client) resource.Map {
	return resource.Map{
		"id":          c.ID,
		"companyName": c.CompanyName,
		"phoneNumber": c.PhoneNumber,
		"address":     c.Address,
		"siretNumber": c.SiretNumber,
		"users":       resource.Collection(c.Users, clientUser),
	}
}

func clientUser(u models.User) resource.Map {
	return resource.Map{
		"id":        u.ID,
		"firstName": u.FirstName,
		"lastName":  u.LastName,
		"roles":     u.EffectiveRoles(),
	}
}

func clientRef(c models.Client) resource.Map {
	return resource.Map{
		"id":          c.ID,
		"companyName": c.CompanyName,
	}
}

// UserListItem is the user collection group.
func UserListItem(u models.User) resource.Map {
	return resource.Map{
		"id":        u.ID,
		"firstName": u.FirstName,
		"lastName":  u.LastName,
		"client":    resource.Item(u.Client, clientRef),
		"roles":     u.EffectiveRoles(),
	}
}

// UserItem is the user item group.
func UserItem(u models.User) resource.Map {
	m := UserListItem(u)
	m["phoneNumber"] = u.PhoneNumber
	m["email"] = u.Email
	return m
}

// Product exposes every product field.
func Product(p models.Product) resource.Map {
	return resource.Map{
		"id":              p.ID,
		"name":            p.Name,
		"slug":            p.Slug,
		"brand":           p.Brand,
		"price":           p.Price,
		"stock":           p.Stock,
		"description":     p.Description,
		"imageUrl":        p.ImageURL,
		"operatingSystem": p.OperatingSystem,
		"storageCapacity": p.StorageCapacity,
		"screenSize":      p.ScreenSize,
		"photoResolution": p.PhotoResolution,
		"weight":          p.Weight,
	}
}

// Me describes the authenticated caller from their token claims.
func Me(p auth.Principal) resource.Map {
	return resource.Map{
		"id":         p.UserID,
		"email":      p.Email,
		"roles":      p.Roles,
		"clientId":   p.ClientID,
		"clientName": p.ClientName,
	}
}
