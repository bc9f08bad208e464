// Package layout convierte un documento de factura en un plan de dibujo con
// posiciones absolutas sobre una página de tamaño fijo.
//
// Orden del documento (A4, desplazamientos desde arriba):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                              EMISOR: 〒 / dirección          │
//	│                              [登録番号] / nombre / fecha     │
//	│                              [請求書番号]                     │
//	│  DESTINATARIO: 〒 / dirección / nombre 御中                  │
//	│                      御 請 求 書                              │
//	│  御請求金額 + leyenda (con o sin 源泉徴収)                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  品目 | 数量 | 単価 | 金額  (una fila por línea)              │
//	│  ─────────────────────────────────────────────────────────  │
//	│                     小計 / 消費税 / [源泉徴収税] / 総計      │
//	│  支払期日 / 振込先 / [振込手数料]                            │
//	└─────────────────────────────────────────────────────────────┘
//
// Cada sección condicional ([...]) ocupa exactamente RowPitch cuando está
// presente y nada cuando no; el cursor se acumula sobre la lista de secciones.
package layout

import (
	"fmt"
	"strconv"

	"github.com/jhoicas/seikyusho-api/internal/domain"
	"github.com/jhoicas/seikyusho-api/internal/domain/entity"
	"github.com/jhoicas/seikyusho-api/internal/domain/invoice"
)

// RowPitch separación vertical entre filas de la tabla y altura de toda sección condicional.
const RowPitch = 20.0

// Tamaños de fuente.
const (
	fontBody    = 10.0
	fontAddress = 12.0
	fontLead    = 12.0
	fontAmount  = 14.0
	fontTitle   = 18.0
)

// Avances fijos (desde la línea base de una fila hasta la siguiente).
const (
	lineStep       = 15.0 // 〒 y líneas de dirección
	issuerGap      = 10.0 // entre el bloque del emisor y el del destinatario
	clientNameLead = 5.0
	clientNameStep = 40.0
	titleStep      = 40.0
	leadStep       = 30.0
	amountStep     = 15.0
	captionStep    = 35.0
	headerLabelDY  = 15.0 // etiqueta de columna respecto a la regla superior
	headerHeight   = 20.0
	itemTextDY     = 15.0 // texto de la fila respecto a su borde superior
	closingRuleDY  = 5.0
	totalsGap      = 55.0 // de la regla de cierre a la fila de subtotal
	footerGap      = 50.0 // del total general al pie
	transferStep   = 20.0
	dueDateStep    = 15.0
)

// Columnas, relativas al margen izquierdo.
const (
	colIssuer      = 350.0
	colDescription = 10.0
	colQuantity    = 200.0
	colUnitPrice   = 300.0
	colAmount      = 400.0
)

// Textos fijos del documento.
const (
	titleText             = "御 請 求 書"
	leadText              = "下記の通り御請求申し上げます。"
	captionTaxIncluded    = "(上記金額は消費税を含みます。)"
	captionWithholding    = "(上記金額は消費税を含み、源泉徴収税額を差し引いた金額です。)"
	transferRequestText   = "下記の通りお振込下さいますようお願い致します。"
	feeNoticeText         = "振込手数料：振込手数料は御社にてご負担くださいますようお願いいたします。"
	clientHonorificSuffix = " 御中"
)

var tableHeaders = [4]string{"品目", "数量", "単価", "金額"}

// Layout genera el plan de dibujo del documento. Es una transformación pura:
// mismas entradas producen exactamente el mismo plan.
//
// Retorna domain.ErrContentOverflow si la tabla de líneas empuja el pie fuera
// del área imprimible; no se trunca ni se pagina.
func Layout(doc entity.InvoiceDocument, params entity.FiscalParams, page PageGeometry) (DrawPlan, error) {
	if err := page.Validate(); err != nil {
		return DrawPlan{}, err
	}
	f := newFormatter()
	left := page.MarginLeft

	var sections []section
	sections = append(sections,
		issuerBlock(doc, left),
		optional("registration_number", showRegistration(doc.Issuer, params),
			textRow(RowPitch, func(p pen) Instruction {
				return p.text(RoleIssuerRegistration, left+colIssuer, 0, fontBody, "登録番号 "+doc.Issuer.RegistrationNumber)
			}),
		),
		always("issuer_name",
			textRow(RowPitch, func(p pen) Instruction {
				return p.text(RoleIssuerName, left+colIssuer, 0, fontBody, doc.Issuer.Name)
			}),
			textRow(RowPitch, func(p pen) Instruction {
				return p.text(RoleIssueDate, left+colIssuer, 0, fontBody, "発行年月日 "+f.date(doc.IssueDate))
			}),
		),
		optional("invoice_id", doc.InvoiceID != "",
			textRow(RowPitch, func(p pen) Instruction {
				return p.text(RoleInvoiceID, left+colIssuer, 0, fontBody, "請求書番号 "+doc.InvoiceID)
			}),
		),
		always("issuer_gap", spacer(issuerGap)),
		clientBlock(doc, left),
		always("title",
			textRow(titleStep, func(p pen) Instruction {
				return p.centered(RoleTitle, 0, fontTitle, titleText)
			}),
		),
		amountBlock(doc, params, left, f),
		tableBlock(doc, left, f),
	)
	sections = append(sections, totalsBlock(doc, params, left, f)...)
	sections = append(sections,
		always("footer",
			textRow(transferStep, func(p pen) Instruction {
				return p.text(RoleTransferRequest, left, 0, fontBody, transferRequestText)
			}),
			textRow(dueDateStep, func(p pen) Instruction {
				return p.text(RoleDueDate, left, 0, fontBody, "支払期日 ："+f.date(doc.Footer.DueDate))
			}),
			textRow(RowPitch, func(p pen) Instruction {
				return p.text(RoleBankInfo, left, 0, fontBody, "振込先 ："+doc.Footer.BankInfo)
			}),
		),
		optional("fee_notice", params.FeeBurden == entity.FeeBurdenClientPays,
			textRow(RowPitch, func(p pen) Instruction {
				return p.text(RoleFeeNotice, left, 0, fontBody, feeNoticeText)
			}),
		),
	)

	instructions, lowest := fold(page, sections)
	if lowest > page.PrintableBottom() {
		return DrawPlan{}, fmt.Errorf("%w: %d líneas requieren %.1fpt y el límite es %.1fpt",
			domain.ErrContentOverflow, len(doc.Items), lowest, page.PrintableBottom())
	}
	return DrawPlan{Instructions: instructions}, nil
}

// showRegistration: el 登録番号 se imprime si no está suprimido y existe.
func showRegistration(issuer entity.PartyInfo, params entity.FiscalParams) bool {
	return !params.RegistrationNumberSuppressed && issuer.RegistrationNumber != ""
}

func issuerBlock(doc entity.InvoiceDocument, left float64) section {
	var rows []row
	if doc.Issuer.PostalCode != "" {
		rows = append(rows, textRow(lineStep, func(p pen) Instruction {
			return p.text(RoleIssuerPostalCode, left+colIssuer, 0, fontBody, "〒"+doc.Issuer.PostalCode)
		}))
	}
	for _, line := range nonEmpty(doc.Issuer.AddressLines) {
		line := line
		rows = append(rows, textRow(lineStep, func(p pen) Instruction {
			return p.text(RoleIssuerAddress, left+colIssuer, 0, fontBody, line)
		}))
	}
	return always("issuer", rows...)
}

func clientBlock(doc entity.InvoiceDocument, left float64) section {
	var rows []row
	if doc.Client.PostalCode != "" {
		rows = append(rows, textRow(lineStep, func(p pen) Instruction {
			return p.text(RoleClientPostalCode, left, 0, fontBody, "〒"+doc.Client.PostalCode)
		}))
	}
	for _, line := range nonEmpty(doc.Client.AddressLines) {
		line := line
		rows = append(rows, textRow(lineStep, func(p pen) Instruction {
			return p.text(RoleClientAddress, left, 0, fontBody, line)
		}))
	}
	rows = append(rows,
		spacer(clientNameLead),
		textRow(clientNameStep, func(p pen) Instruction {
			return p.text(RoleClientName, left, 0, fontAddress, doc.Client.Name+clientHonorificSuffix)
		}),
	)
	return always("client", rows...)
}

func amountBlock(doc entity.InvoiceDocument, params entity.FiscalParams, left float64, f formatter) section {
	caption := captionTaxIncluded
	if params.WithholdingEnabled {
		caption = captionWithholding
	}
	return always("requested_amount",
		textRow(leadStep, func(p pen) Instruction {
			return p.text(RoleLead, left, 0, fontLead, leadText)
		}),
		textRow(amountStep, func(p pen) Instruction {
			return p.text(RoleRequestedAmount, left, 0, fontAmount, "御請求金額 "+f.grouped(doc.Totals.GrandTotal)+" 円")
		}),
		textRow(captionStep, func(p pen) Instruction {
			return p.text(RoleAmountCaption, left, 0, fontBody, caption)
		}),
	)
}

func tableBlock(doc entity.InvoiceDocument, left float64, f formatter) section {
	rows := []row{{
		advance: headerHeight,
		bottom:  headerHeight,
		draw: func(p pen) []Instruction {
			return []Instruction{
				p.rule(RoleTableRule, 0),
				p.text(RoleTableHeader, left+colDescription, headerLabelDY, fontBody, tableHeaders[0]),
				p.text(RoleTableHeader, left+colQuantity, headerLabelDY, fontBody, tableHeaders[1]),
				p.text(RoleTableHeader, left+colUnitPrice, headerLabelDY, fontBody, tableHeaders[2]),
				p.text(RoleTableHeader, left+colAmount, headerLabelDY, fontBody, tableHeaders[3]),
				p.rule(RoleTableRule, headerHeight),
			}
		},
	}}
	for _, item := range doc.Items {
		item := item
		rows = append(rows, row{
			advance: RowPitch,
			bottom:  itemTextDY,
			draw: func(p pen) []Instruction {
				return []Instruction{
					p.text(RoleItemCell, left+colDescription, itemTextDY, fontBody, item.Description),
					p.text(RoleItemCell, left+colQuantity, itemTextDY, fontBody, f.decimal(item.Quantity)+item.Unit),
					p.text(RoleItemCell, left+colUnitPrice, itemTextDY, fontBody, f.decimal(item.UnitPrice)+"円"),
					p.text(RoleItemCell, left+colAmount, itemTextDY, fontBody, f.yen(invoice.LineAmount(item))),
				}
			},
		})
	}
	rows = append(rows, row{
		advance: closingRuleDY + totalsGap,
		bottom:  closingRuleDY,
		draw: func(p pen) []Instruction {
			return []Instruction{p.rule(RoleTableRule, closingRuleDY)}
		},
	})
	return always("table", rows...)
}

// totalsBlock devuelve subtotal+impuesto, la retención opcional y el total
// general; con retención el total baja exactamente una fila.
func totalsBlock(doc entity.InvoiceDocument, params entity.FiscalParams, left float64, f formatter) []section {
	pair := func(role, label, value string) func(p pen) []Instruction {
		return func(p pen) []Instruction {
			return []Instruction{
				p.text(role, left+colUnitPrice, 0, fontBody, label),
				p.text(role, left+colAmount, 0, fontBody, value),
			}
		}
	}
	taxLabel := "消費税(" + strconv.Itoa(params.TaxRatePercent) + "%)"
	withholdingLabel := "源泉徴収税(" + params.WithholdingRatePercent.String() + "%)"
	return []section{
		always("totals",
			row{advance: RowPitch, draw: pair(RoleSubtotal, "小計", f.yen(doc.Totals.Subtotal))},
			row{advance: RowPitch, draw: pair(RoleTax, taxLabel, f.yen(doc.Totals.TaxAmount))},
		),
		optional("withholding", params.WithholdingEnabled,
			row{advance: RowPitch, draw: pair(RoleWithholding, withholdingLabel, "-"+f.yen(doc.Totals.WithholdingAmount))},
		),
		always("grand_total",
			row{advance: footerGap, draw: pair(RoleGrandTotal, "総計", f.yen(doc.Totals.GrandTotal))},
		),
	}
}

func nonEmpty(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}
