package dashboard

import (
	"context"
	"sync"

	"realestate/app/models"
)

// ContactPanel shows the single contact card. Writes refetch instead of
// patching the cache, except delete which clears it.
type ContactPanel struct {
	AddDialog  *Dialog[models.ContactInput]
	EditDialog *Dialog[models.ContactInput]

	api   API
	mutex sync.RWMutex
	state State
	card  *models.Contact
	err   string
}

func NewContactPanel(api API) *ContactPanel {
	return &ContactPanel{
		AddDialog:  NewDialog[models.ContactInput]("Failed to add contact."),
		EditDialog: NewDialog[models.ContactInput]("Failed to update contact."),
		api:        api,
	}
}

// Load fetches the first contact, if any.
func (p *ContactPanel) Load(ctx context.Context) error {
	p.mutex.Lock()
	p.state = Loading
	p.mutex.Unlock()

	contacts, err := p.api.ListContacts(ctx)

	p.mutex.Lock()
	defer p.mutex.Unlock()
	if err != nil {
		p.state = Failed
		p.err = errorText(err, "Failed to load contact.")
		return err
	}
	p.state = Loaded
	p.err = ""
	p.card = nil
	if len(contacts) > 0 {
		p.card = contacts[0]
	}
	return nil
}

// Contact returns a copy of the shown contact, or nil.
func (p *ContactPanel) Contact() *models.Contact {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	if p.card == nil {
		return nil
	}
	c := *p.card
	return &c
}

func (p *ContactPanel) State() State {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.state
}

func (p *ContactPanel) Err() string {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.err
}

// SubmitAdd creates the contact and reloads the panel.
func (p *ContactPanel) SubmitAdd(ctx context.Context) error {
	_, err := p.AddDialog.Submit(ctx, ValidateContactForm, func(ctx context.Context, in *models.ContactInput) error {
		_, err := p.api.CreateContact(ctx, in)
		return err
	})
	if err != nil {
		return err
	}
	return p.Load(ctx)
}

// StartEdit opens the edit dialog on the shown contact. It reports false
// when there is none.
func (p *ContactPanel) StartEdit() bool {
	c := p.Contact()
	if c == nil {
		return false
	}
	p.EditDialog.Open(models.ContactInput{Name: c.Name, Email: c.Email, Phone: c.Phone})
	return true
}

// SubmitEdit updates the shown contact and refetches it.
func (p *ContactPanel) SubmitEdit(ctx context.Context) error {
	c := p.Contact()
	if c == nil {
		return ErrDialogClosed
	}
	_, err := p.EditDialog.Submit(ctx, ValidateContactForm, func(ctx context.Context, in *models.ContactInput) error {
		name, email, phone := in.Name, in.Email, in.Phone
		_, err := p.api.UpdateContact(ctx, &models.ContactPatch{ID: c.ID.Hex(), Name: &name, Email: &email, Phone: &phone})
		return err
	})
	if err != nil {
		return err
	}
	return p.Load(ctx)
}

// Delete removes the shown contact and clears the panel.
func (p *ContactPanel) Delete(ctx context.Context) error {
	c := p.Contact()
	if c == nil {
		return nil
	}
	if _, err := p.api.DeleteContact(ctx, c.ID.Hex()); err != nil {
		p.mutex.Lock()
		p.err = errorText(err, "Failed to delete contact.")
		p.mutex.Unlock()
		return err
	}
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.card = nil
	p.err = ""
	return nil
}
