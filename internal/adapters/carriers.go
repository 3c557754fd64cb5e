package adapters

import "github.com/Plauto679/taiico-crm/internal/models"

// Built-in adapters, one per (carrier, product line) ledger the brokerage
// manages. Raw headers are whatever each carrier ships in its workbook;
// output names are the canonical column set.

func metlifeVida() *Adapter {
	return &Adapter{
		Carrier: models.CarrierMetlife,
		Line:    models.LineLife,
		Columns: []ColumnSpec{
			{Name: models.ColPolicyNumber, Source: "Póliza"},
			{Name: models.ColContractor, Source: "Contratante"},
			{Name: models.ColCoverageStart, Source: "Fecha Inicio Vigencia", Kind: KindDate},
			{Name: models.ColCoverageEnd, Source: "Fecha de Renovación", Kind: KindDate},
			{Name: models.ColPremium, Source: "Prima", Kind: KindMoney},
			{Name: models.ColProduct, Source: "Producto"},
			{Name: models.ColAgent, Source: "Agente"},
			{Name: "payment_form", Source: "Forma de Pago"},
			{Name: "collection_channel", Source: "Conducto de Cobro"},
			{Name: models.ColStatus, Source: "Estatus"},
			{Name: models.ColCaseFile, Source: "Expediente"},
			{Name: models.ColNotified, Source: "Notificado"},
		},
		RenewalDateColumn: models.ColCoverageEnd,
	}
}

func metlifeGMM() *Adapter {
	return &Adapter{
		Carrier: models.CarrierMetlife,
		Line:    models.LineHealth,
		Columns: []ColumnSpec{
			{Name: models.ColPolicyNumber, Source: "POLIZA"},
			{Name: models.ColContractor, Source: "CONTRATANTE"},
			{Name: models.ColInsured, Source: "NOMBREASEGURADO"},
			{Name: models.ColCoverageStart, Source: "FINIVIG", Kind: KindDate},
			{Name: models.ColCoverageEnd, Source: "FFINVIG", Kind: KindDate},
			{Name: models.ColPaidThrough, Source: "PAGADOHASTA", Kind: KindDate},
			{Name: models.ColPremium, Source: "PRIMA", Kind: KindMoney},
			{Name: models.ColSurcharge, Source: "RECARGO", Kind: KindMoney},
			{Name: models.ColExpenseFees, Source: "GTOSEXP", Kind: KindMoney},
			{Name: models.ColTax, Source: "IVA", Kind: KindMoney},
			{Name: models.ColDeductible, Source: "DEDUCIBLE", Kind: KindMoney},
			// COASEGURO arrives as a whole-number percentage.
			{Name: models.ColCoinsurance, Source: "COASEGURO", Kind: KindPercent},
			{Name: models.ColAgent, Source: "AGENTE"},
			{Name: models.ColStatus, Source: "ESTATUS"},
			{Name: models.ColCaseFile, Source: "EXPEDIENTE"},
			{Name: models.ColNotified, Source: "NOTIFICADO"},
		},
		RenewalDateColumn: models.ColCoverageEnd,
	}
}

func axaVida() *Adapter {
	return &Adapter{
		Carrier: models.CarrierAXA,
		Line:    models.LineLife,
		Columns: []ColumnSpec{
			{Name: models.ColPolicyNumber, Source: "No. Póliza"},
			{Name: models.ColContractor, Source: "Contratante"},
			{Name: models.ColInsured, Source: "Asegurado"},
			{Name: models.ColCoverageStart, Source: "Inicio Vigencia", Kind: KindDate},
			{Name: models.ColCoverageEnd, Source: "Fin Vigencia", Kind: KindDate},
			{Name: models.ColPremium, Source: "Prima Total", Kind: KindMoney},
			{Name: models.ColCoinsurance, Source: "Coaseguro", Kind: KindPercent},
			{Name: models.ColProduct, Source: "Plan"},
			{Name: models.ColStatus, Source: "Estatus"},
			{Name: models.ColCaseFile, Source: "Expediente"},
			{Name: models.ColNotified, Source: "Notificado"},
		},
		RenewalDateColumn: models.ColCoverageEnd,
		// AXA ships coinsurance already as a fraction.
		FractionalRates: true,
	}
}

func gnpGMM() *Adapter {
	return &Adapter{
		Carrier: models.CarrierGNP,
		Line:    models.LineHealth,
		Columns: []ColumnSpec{
			{Name: models.ColPolicyNumber, Source: "NUM_POLIZA"},
			{Name: models.ColContractor, Source: "CONTRATANTE"},
			{Name: models.ColInsured, Source: "NOMBRE_ASEGURADO"},
			{Name: models.ColCoverageStart, Source: "FEC_INI_VIG", Kind: KindPackedDate},
			{Name: models.ColCoverageEnd, Source: "FEC_FIN_VIG", Kind: KindPackedDate},
			{Name: models.ColPremium, Source: "PRIMA_TOTAL", Kind: KindMoney},
			{Name: models.ColDeductible, Source: "DEDUCIBLE", Kind: KindMoney},
			{Name: models.ColCoinsurance, Source: "COASEGURO", Kind: KindPercent},
			{Name: models.ColStatus, Source: "ESTATUS"},
			{Name: models.ColCaseFile, Source: "EXPEDIENTE"},
			{Name: models.ColNotified, Source: "NOTIFICADO"},
		},
		RenewalDateColumn: models.ColCoverageEnd,
		// Group health lists one row per insured person under the same
		// policy; only the first row per policy survives.
		DedupeByPolicy: true,
	}
}
