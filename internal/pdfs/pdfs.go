// Package pdfs renders the fixed-layout membership documents. Layout and
// wording follow the cooperative's printed stationery; dates are printed in
// the day.month.year form used on German correspondence.
package pdfs

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// CoopInfo is the letterhead identity printed on every document.
type CoopInfo struct {
	Name   string
	Street string
	City   string
}

// MemberData is the recipient block of a member-specific document.
type MemberData struct {
	MemberNumber int64
	DisplayName  string
	Street       string
	Postcode     string
	City         string
}

// printedDate formats a date the way the documents print it.
func printedDate(t time.Time) string {
	return t.Format("02.01.2006")
}

func newDocument(coop CoopInfo) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(25, 20, 25)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, tr(coop.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, tr(coop.Street+", "+coop.City), "", 1, "L", false, 0, "")
	pdf.Ln(8)
	return pdf
}

func recipientBlock(pdf *fpdf.Fpdf, member MemberData) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, tr(member.DisplayName), "", 1, "L", false, 0, "")
	if member.Street != "" {
		pdf.CellFormat(0, 5, tr(member.Street), "", 1, "L", false, 0, "")
	}
	if member.Postcode != "" || member.City != "" {
		pdf.CellFormat(0, 5, tr(member.Postcode+" "+member.City), "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)
}

func title(pdf *fpdf.Fpdf, text string) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr(text), "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func paragraph(pdf *fpdf.Fpdf, text string) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, tr(text), "", "L", false)
	pdf.Ln(3)
}

func signatureBlock(pdf *fpdf.Fpdf, coop CoopInfo, date time.Time) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, tr("Berlin, den "+printedDate(date)), "", 1, "L", false, 0, "")
	pdf.Ln(14)
	pdf.CellFormat(70, 5, "", "T", 0, "L", false, 0, "")
	pdf.CellFormat(20, 5, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(70, 5, "", "T", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(70, 4, tr("Unterschrift Mitglied"), "", 0, "L", false, 0, "")
	pdf.CellFormat(20, 4, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(70, 4, tr("Für den Vorstand, "+coop.Name), "", 1, "L", false, 0, "")
}

func render(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// EmptyMembershipAgreement renders the blank agreement form handed out at
// info evenings.
func EmptyMembershipAgreement(coop CoopInfo, sharePrice decimal.Decimal) ([]byte, error) {
	pdf := newDocument(coop)
	title(pdf, "Beitrittserklärung")
	paragraph(pdf, "Hiermit erkläre ich meinen Beitritt zur "+coop.Name+
		" und zeichne folgende Anzahl von Geschäftsanteilen zu je "+
		sharePrice.StringFixed(2)+" EUR:")
	pdf.Ln(4)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "", 10)
	for _, field := range []string{"Name, Vorname:", "Anschrift:", "E-Mail:", "Anzahl Anteile:"} {
		pdf.CellFormat(45, 8, tr(field), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, "", "B", 1, "L", false, 0, "")
	}
	paragraph(pdf, "Die Satzung der Genossenschaft habe ich zur Kenntnis genommen. "+
		"Ich verpflichte mich, die nach Satzung geschuldeten Einzahlungen auf "+
		"die gezeichneten Geschäftsanteile zu leisten.")
	signatureBlock(pdf, coop, time.Now())
	return render(pdf)
}

// MembershipAgreement renders the agreement pre-filled for one member.
func MembershipAgreement(coop CoopInfo, member MemberData, numShares int, sharePrice decimal.Decimal) ([]byte, error) {
	pdf := newDocument(coop)
	recipientBlock(pdf, member)
	title(pdf, "Beitrittserklärung")
	paragraph(pdf, fmt.Sprintf(
		"Hiermit erklärt %s (Mitgliedsnummer %d) den Beitritt zur %s und zeichnet "+
			"%d Geschäftsanteil(e) zu je %s EUR, insgesamt %s EUR.",
		member.DisplayName, member.MemberNumber, coop.Name,
		numShares, sharePrice.StringFixed(2),
		sharePrice.Mul(decimal.NewFromInt(int64(numShares))).StringFixed(2)))
	paragraph(pdf, "Die Satzung der Genossenschaft wurde zur Kenntnis genommen. "+
		"Das Mitglied verpflichtet sich, die nach Satzung geschuldeten Einzahlungen "+
		"auf die gezeichneten Geschäftsanteile zu leisten.")
	signatureBlock(pdf, coop, time.Now())
	return render(pdf)
}

// MembershipConfirmation renders the confirmation of membership with the
// number of shares held as of the given date.
func MembershipConfirmation(coop CoopInfo, member MemberData, numShares int, date time.Time) ([]byte, error) {
	pdf := newDocument(coop)
	recipientBlock(pdf, member)
	title(pdf, "Mitgliedschaftsbestätigung")
	paragraph(pdf, fmt.Sprintf(
		"Hiermit bestätigen wir, dass %s (Mitgliedsnummer %d) zum %s Mitglied der %s "+
			"ist und %d Geschäftsanteil(e) hält.",
		member.DisplayName, member.MemberNumber, printedDate(date), coop.Name, numShares))
	paragraph(pdf, "Diese Bestätigung wurde maschinell erstellt und ist ohne Unterschrift gültig.")
	signatureBlock(pdf, coop, date)
	return render(pdf)
}

// ExtraSharesConfirmation renders the confirmation for additionally acquired
// shares.
func ExtraSharesConfirmation(coop CoopInfo, member MemberData, numShares int, date time.Time) ([]byte, error) {
	pdf := newDocument(coop)
	recipientBlock(pdf, member)
	title(pdf, "Bestätigung über die Zeichnung weiterer Anteile")
	paragraph(pdf, fmt.Sprintf(
		"Hiermit bestätigen wir, dass %s (Mitgliedsnummer %d) zum %s weitere "+
			"%d Geschäftsanteil(e) an der %s gezeichnet hat.",
		member.DisplayName, member.MemberNumber, printedDate(date), numShares, coop.Name))
	paragraph(pdf, "Diese Bestätigung wurde maschinell erstellt und ist ohne Unterschrift gültig.")
	signatureBlock(pdf, coop, date)
	return render(pdf)
}
