package pages

import (
	"strconv"
	"time"

	"github.com/danielsheh02/willy-wonka-factory/tests/e2e/config"
	"github.com/playwright-community/playwright-go"
)

var (
	equipmentAddButton     = XPath(`//button[contains(text(), 'Добавить')]`)
	equipmentDialogTitle   = XPath(`//h2[contains(text(), 'оборудование')]`)
	equipmentName          = inputByLabel.Format("Название")
	equipmentModel         = inputByLabel.Format("Модель")
	equipmentDescription   = areaByLabel.Format("Описание")
	equipmentHealth        = numberField.Format("Состояние")
	equipmentTemperature   = numberField.Format("Температура")
	equipmentWorkshop      = selectField.Format("Цех")
	equipmentEditInRow     = Template(`//div[@role='row' and contains(., %s)]//button[@title='Редактировать']`)
	equipmentDeleteInRow   = Template(`//div[@role='row' and contains(., %s)]//button[@title='Удалить']`)
	equipmentConfirmDelete = XPath(`//button[contains(text(), 'Удалить') and not(contains(@title, 'Удалить'))]`)
)

// Equipment is a new machine as entered in the add dialog.
type Equipment struct {
	Name        string
	Model       string
	Description string
	Health      int
	Workshop    string
}

// EquipmentEdit lists the fields to change; nil fields are left untouched.
type EquipmentEdit struct {
	Health      *int
	Temperature *int
}

// EquipmentPage is the machine registry at /equipment.
type EquipmentPage struct {
	Base
}

// NewEquipmentPage binds the machine registry to page.
func NewEquipmentPage(page playwright.Page, cfg *config.Config) *EquipmentPage {
	return &EquipmentPage{Base: NewBase(page, cfg, "/equipment")}
}

// CreateEquipment registers a machine and waits for the dialog to close.
func (p *EquipmentPage) CreateEquipment(e Equipment) error {
	if err := p.OpenDialog(equipmentAddButton); err != nil {
		return err
	}
	if _, err := p.Find(equipmentDialogTitle); err != nil {
		return err
	}
	if err := p.Type(equipmentName, e.Name); err != nil {
		return err
	}
	if err := p.Type(equipmentModel, e.Model); err != nil {
		return err
	}
	if e.Description != "" {
		if err := p.Type(equipmentDescription, e.Description); err != nil {
			return err
		}
	}
	if err := p.TypeForce(equipmentHealth, strconv.Itoa(e.Health)); err != nil {
		return err
	}
	if e.Workshop != "" {
		if err := p.Choose(equipmentWorkshop, optionByText.Format(e.Workshop)); err != nil {
			return err
		}
	}
	if err := p.SaveDialog(); err != nil {
		return err
	}
	return p.WaitGone(dialogRoot, 0)
}

// EditEquipment applies edit to the machine called name.
func (p *EquipmentPage) EditEquipment(name string, edit EquipmentEdit) error {
	if err := p.Click(equipmentEditInRow.Format(name)); err != nil {
		return err
	}
	if _, err := p.Find(equipmentDialogTitle); err != nil {
		return err
	}
	if edit.Health != nil {
		if err := p.TypeForce(equipmentHealth, strconv.Itoa(*edit.Health)); err != nil {
			return err
		}
	}
	if edit.Temperature != nil {
		if err := p.TypeForce(equipmentTemperature, strconv.Itoa(*edit.Temperature)); err != nil {
			return err
		}
	}
	return p.SaveDialog()
}

// DeleteEquipment removes the machine called name after confirming.
func (p *EquipmentPage) DeleteEquipment(name string) error {
	if err := p.Click(equipmentDeleteInRow.Format(name)); err != nil {
		return err
	}
	if err := p.Click(equipmentConfirmDelete); err != nil {
		return err
	}
	return p.awaitToast()
}

// EquipmentExists reports whether a row for name shows within ten seconds.
func (p *EquipmentPage) EquipmentExists(name string) bool {
	return p.HasRow(name, 10*time.Second)
}

// WaitEquipmentGone waits for the row for name to disappear.
func (p *EquipmentPage) WaitEquipmentGone(name string) error {
	return p.WaitGone(rowWith.Format(name), 10*time.Second)
}
