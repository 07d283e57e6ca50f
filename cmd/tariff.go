package cmd

import (
	"errors"
	"fmt"

	"parcelquote/internal/core/domain/model/kernel"
	"parcelquote/internal/core/domain/services"

	"github.com/spf13/viper"
)

// LoadTariff returns the default tariff, overridden by the YAML file at path
// when path is not empty. Amounts in the file are in minor units; keys the
// file omits keep their default.
//
//	version: 2026-06
//	currency: GBP
//	base_fee: 650
//	premium_category_fee: 400
func LoadTariff(path string) (services.Tariff, error) {
	def := services.DefaultTariff()
	if path == "" {
		return def, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("version", def.Version)
	v.SetDefault("currency", def.Currency())
	v.SetDefault("base_fee", def.BaseFee.Minor())
	v.SetDefault("standard_category_fee", def.StandardCategoryFee.Minor())
	v.SetDefault("premium_category_fee", def.PremiumCategoryFee.Minor())
	v.SetDefault("weight_free_grams", def.WeightFreeGrams)
	v.SetDefault("weight_rate_per_kg", def.WeightRatePerKg.Minor())
	v.SetDefault("distance_free_meters", def.DistanceFreeMeters)
	v.SetDefault("distance_rate_per_km", def.DistanceRatePerKm.Minor())
	v.SetDefault("max_distance_meters", def.MaxDistanceMeters)
	v.SetDefault("scheduled_surcharge", def.ScheduledSurcharge.Minor())

	if err := v.ReadInConfig(); err != nil {
		return services.Tariff{}, fmt.Errorf("read tariff file %s: %w", path, err)
	}

	currency := v.GetString("currency")
	var moneyErrs []error
	money := func(key string) kernel.Money {
		m, err := kernel.NewMoney(v.GetInt64(key), currency)
		if err != nil {
			moneyErrs = append(moneyErrs, fmt.Errorf("%s: %w", key, err))
		}
		return m
	}

	tariff := services.Tariff{
		Version:             v.GetString("version"),
		BaseFee:             money("base_fee"),
		StandardCategoryFee: money("standard_category_fee"),
		PremiumCategoryFee:  money("premium_category_fee"),
		WeightFreeGrams:     v.GetInt64("weight_free_grams"),
		WeightRatePerKg:     money("weight_rate_per_kg"),
		DistanceFreeMeters:  v.GetInt64("distance_free_meters"),
		DistanceRatePerKm:   money("distance_rate_per_km"),
		MaxDistanceMeters:   v.GetInt64("max_distance_meters"),
		ScheduledSurcharge:  money("scheduled_surcharge"),
	}
	if err := errors.Join(moneyErrs...); err != nil {
		return services.Tariff{}, err
	}
	if err := tariff.Validate(); err != nil {
		return services.Tariff{}, fmt.Errorf("tariff file %s: %w", path, err)
	}

	return tariff, nil
}
