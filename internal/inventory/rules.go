package inventory

import "fmt"

// Saf bakiye kuralları: aggregate'ler çağıran tarafından okunur, burada
// sadece aritmetik kontrol yapılır. Side effect yok, transaction sınırı
// çağıranındır. Mesajlar hesaplanan sayıları taşır (operatör bunları görür).

// ValidateStockInReduction: PO'daki diğer IN kayıtları + aday yeni miktar
// (sumIn), toplam OUT'un altına düşemez.
func ValidateStockInReduction(newQty, sumIn, sumOut int) error {
	if sumIn < sumOut {
		return fmt.Errorf("Cannot reduce Stock IN to %d. Total OUT is %d, which would exceed total IN %d.", newQty, sumOut, sumIn)
	}
	return nil
}

// ValidateStockInRemoval: kayıt silindikten sonra kalan IN toplamı (sumIn),
// toplam OUT'u karşılamaya devam etmeli.
func ValidateStockInRemoval(sumIn, sumOut int) error {
	if sumIn < sumOut {
		return fmt.Errorf("Cannot delete Stock IN. Remaining IN (%d) would be less than Total OUT (%d).", sumIn, sumOut)
	}
	return nil
}

// ValidateStockOutQty: çıkış miktarı kalan bakiyeyi (IN - OUT) aşamaz.
func ValidateStockOutQty(qty, sumIn, sumOut int) error {
	available := sumIn - sumOut
	if qty > available {
		return fmt.Errorf("Insufficient stock. Available: %d, Requested: %d", available, qty)
	}
	return nil
}
