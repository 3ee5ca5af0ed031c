package domain

const legendBase = "https://eccharts.ecmwf.int/wms/?token=public&request=GetLegend"

// Layers — статичный каталог слоёв визуализации CAMS, отдаётся как есть
// через GET /api/layers.
var Layers = []Layer{
	{
		ID:          "pm2p5",
		Name:        "PM2.5",
		Label:       "PM2.5 (µg/m³)",
		Layer:       "composition_pm2p5",
		Style:       "sh_all_pm2p5_defra_daqi",
		LegendURL:   legendBase + "&layers=composition_pm2p5&styles=sh_all_pm2p5_defra_daqi&width=350&height=50",
		Description: "Particules fines < 2.5 µm",
	},
	{
		ID:          "co2",
		Name:        "CO₂",
		Label:       "Dioxyde de carbone (CO₂, ppmv)",
		Layer:       "composition_co2_surface",
		Style:       "sh_nipy_spectral_co2_surface",
		LegendURL:   legendBase + "&layers=composition_co2_surface&styles=sh_nipy_spectral_co2_surface&width=350&height=50",
		Description: "Concentration en surface",
	},
	{
		ID:          "so2",
		Name:        "SO₂",
		Label:       "Dioxyde de soufre (SO₂, ppbv)",
		Layer:       "composition_so2_surface",
		Style:       "sh_all_so2_surface",
		LegendURL:   legendBase + "&layers=composition_so2_surface&styles=sh_all_so2_surface&width=350&height=50",
		Description: "Dioxyde de soufre en surface",
	},
	{
		ID:          "ch4",
		Name:        "CH₄",
		Label:       "Méthane (CH₄, ppbv)",
		Layer:       "composition_ch4_surface",
		Style:       "sh_Oranges1_ch4_surface",
		LegendURL:   legendBase + "&layers=composition_ch4_surface&styles=sh_Oranges1_ch4_surface&width=350&height=50",
		Description: "Méthane en surface",
	},
	{
		ID:          "co",
		Name:        "CO",
		Label:       "Monoxyde de carbone (CO, ppbv)",
		Layer:       "composition_co_surface",
		Style:       "sh_YlGnBu_co_upper",
		LegendURL:   legendBase + "&layers=composition_co_surface&styles=sh_YlGnBu_co_upper&width=350&height=50",
		Description: "Monoxyde de carbone en surface",
	},
	{
		ID:          "no2",
		Name:        "NO₂",
		Label:       "Dioxyde d’azote (NO₂, ppbv)",
		Layer:       "composition_no2_surface",
		Style:       "sh_all_no2_surface",
		LegendURL:   legendBase + "&layers=composition_no2_surface&styles=sh_all_no2_surface&width=350&height=50",
		Description: "Dioxyde d’azote en surface",
	},
	{
		ID:          "aod",
		Name:        "AOD",
		Label:       "Aérosols (AOD 550 nm)",
		Layer:       "composition_aod550",
		Style:       "sh_BuYlRd_aod",
		LegendURL:   legendBase + "&layers=composition_aod550&styles=sh_BuYlRd_aod&width=350&height=50",
		Description: "Profondeur optique des aérosols",
	},
	{
		ID:          "o3",
		Name:        "O₃",
		Label:       "Ozone (O₃, ppbv)",
		Layer:       "composition_o3_850hpa",
		Style:       "sh_all_o3_850hpa",
		LegendURL:   legendBase + "&layers=composition_o3_850hpa&styles=sh_all_o3_850hpa&width=350&height=50",
		Description: "Ozone à 850 hPa",
	},
}
