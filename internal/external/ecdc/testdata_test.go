package ecdc

const testingCSV = "country,country_code,year_week,level,region,region_name,new_cases,tests_done,population,testing_rate,positivity_rate,testing_data_source\n" +
	"Germany,DE,2021-W04,national,DE,Germany,90000,1100000,83166711,1322.6,8.2,TESSy COVID-19\n" +
	"Germany,DE,2021-W05,national,DE,Germany,70000,1050000,83166711,1262.5,6.666,TESSy COVID-19\n" +
	"Norway,NO,2021-W05,national,NO,Norway,1500,160000,5367580,2980.8,,TESSy COVID-19\n" +
	"Norway,NO,2021-W05,subnational,NO08,Oslo,700,50000,693494,7209.9,1.4,TESSy COVID-19\n"

const casesCSV = "country,country_code,continent,population,indicator,weekly_count,year_week,rate_14_day,cumulative_count,source,note\n" +
	"Germany,DEU,Europe,83166711,cases,70000,2021-05,180.5,2250000,TESSy,\n" +
	"Germany,DEU,Europe,83166711,deaths,5000,2021-05,120.1,60000,TESSy,\n" +
	"Norway,NOR,Europe,5367580,cases,1500,2021-05,60.2,65000,TESSy,\n"
