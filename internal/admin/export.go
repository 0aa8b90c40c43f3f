package admin

import (
	"fmt"
	"io"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type userExportRow struct {
	ID       string `csv:"id"`
	Name     string `csv:"name"`
	Email    string `csv:"email"`
	Role     string `csv:"role"`
	Verified bool   `csv:"verified"`
}

// ExportUsersCSV writes the held user list as CSV.
func (c *Console) ExportUsersCSV(w io.Writer) error {
	users := c.Users()
	rows := make([]userExportRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, userExportRow{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			Role:     u.Role,
			Verified: u.Verified,
		})
	}
	return gocsv.Marshal(&rows, w)
}

// ExportOrdersXLSX writes the held order list as a spreadsheet.
func (c *Console) ExportOrdersXLSX(w io.Writer) error {
	f := excelize.NewFile()
	sheet := "Sheet1"
	printer := message.NewPrinter(language.English)

	headers := []string{"Order ID", "Customer", "Medicine", "Qty", "Total", "Payment", "Order Status", "Payment Status"}
	for i, h := range headers {
		f.SetCellValue(sheet, fmt.Sprintf("%c1", 'A'+i), h)
	}
	for i, o := range c.Orders() {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), o.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), o.User.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), o.Medicine.DisplayName())
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), o.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), printer.Sprintf("%.2f", o.Total()))
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), o.PaymentMethod)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), o.OrderStatus)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), o.PaymentStatus)
	}
	return f.Write(w)
}
