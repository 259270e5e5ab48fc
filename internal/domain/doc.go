// Package domain models SRAG (Severe Acute Respiratory Syndrome) case
// notifications and the daily aggregation and windowed-rate computations
// built on them.
//
// # Data Source
//
// Case rows come from SIVEP-Gripe snapshot exports, one row per notified
// case. Column semantics follow the SIVEP-Gripe data dictionary:
//
//	DT_NOTIFIC  notification date (the sole aggregation key)
//	NU_NOTIFIC  notification number
//	EVOLUCAO    case evolution: 1 cure, 2 death, 3 death from other causes, 9 ignored
//	UTI         ICU admission: 1 yes, 2 no, 9 ignored
//	VACINA      influenza vaccine: 1 yes, 2 no, 9 ignored, blank unknown
//	VACINA_COV  COVID-19 vaccine: same coding
//	CLASSI_FIN  final classification: 1 influenza, 2 other respiratory virus,
//	            3 other etiological agent, 4 unspecified, 5 COVID-19, blank unknown
//
// Blank or malformed code fields parse to the zero "unknown" value of their
// enum. A blank or malformed DT_NOTIFIC rejects the whole row.
//
// # Windows
//
// Every computation anchors at the max notification date present in the
// data and looks backward over an inclusive run of calendar days (or
// months). A window of N days ending at max date starts at max-(N-1) days.
// The vaccination sub-count is only computed inside a trailing window
// (30 days by default) because the vaccination rate never reads older
// dates; VaccinatedCount is zero and meaningless outside it.
//
// # Undefined rates
//
// Any rate whose denominator window sums to zero is returned as an explicit
// undefined RateResult, including the period-variation metric when its
// previous period holds no cases. Callers render it as "insufficient data",
// never as 0.00% or infinity.
package domain
